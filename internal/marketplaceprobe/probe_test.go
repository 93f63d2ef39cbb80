package marketplaceprobe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProber(t *testing.T, handler http.HandlerFunc) (*Prober, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	return &Prober{BaseURL: server.URL, Client: &http.Client{Timeout: 2 * time.Second}}, server.Close
}

func TestIsPublishedMatchesSelectedOption(t *testing.T) {
	t.Parallel()
	prober, closeFn := newTestProber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<option value="v2.1.0" selected>v2.1.0</option>`))
	})
	defer closeFn()

	published, inconclusive, err := prober.IsPublished(context.Background(), "acme", "widget", "v2.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inconclusive {
		t.Fatal("expected a conclusive result")
	}
	if !published {
		t.Fatal("expected version to be reported as published")
	}
}

func TestIsPublishedMismatchIsNotPublished(t *testing.T) {
	t.Parallel()
	prober, closeFn := newTestProber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<option value="v2.0.0" selected>v2.0.0</option>`))
	})
	defer closeFn()

	published, inconclusive, err := prober.IsPublished(context.Background(), "acme", "widget", "v2.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inconclusive {
		t.Fatal("expected a conclusive result")
	}
	if published {
		t.Fatal("expected version to be reported as not published")
	}
}

func TestIsPublishedNotFoundIsConclusiveNotPublished(t *testing.T) {
	t.Parallel()
	prober, closeFn := newTestProber(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer closeFn()

	published, inconclusive, err := prober.IsPublished(context.Background(), "acme", "widget", "v2.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inconclusive {
		t.Fatal("a 404 is conclusive: the listing genuinely doesn't exist")
	}
	if published {
		t.Fatal("expected not published")
	}
}

func TestIsPublishedServerErrorIsInconclusive(t *testing.T) {
	t.Parallel()
	prober, closeFn := newTestProber(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer closeFn()

	published, inconclusive, err := prober.IsPublished(context.Background(), "acme", "widget", "v2.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inconclusive {
		t.Fatal("a 5xx must never be treated as a conclusive not-published result")
	}
	if published {
		t.Fatal("expected published=false on an inconclusive result")
	}
}

func TestIsPublishedMissingMarkupIsInconclusive(t *testing.T) {
	t.Parallel()
	prober, closeFn := newTestProber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no listing markup here</body></html>`))
	})
	defer closeFn()

	_, inconclusive, err := prober.IsPublished(context.Background(), "acme", "widget", "v2.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inconclusive {
		t.Fatal("expected inconclusive when the selected-option markup can't be found")
	}
}
