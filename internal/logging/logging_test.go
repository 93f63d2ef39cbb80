package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainLoggerPrefixes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewPlainLogger(&buf)
	l.Warn("disk at %d%%", 90)
	if got := buf.String(); got != "warning: disk at 90%\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPlainLoggerSafeOutputIsIdentity(t *testing.T) {
	t.Parallel()
	l := NewPlainLogger(&bytes.Buffer{})
	if got := l.SafeOutput("100% done\r\n"); got != "100% done\r\n" {
		t.Fatalf("expected SafeOutput to pass text through unchanged, got %q", got)
	}
}

func TestWorkflowLoggerEmitsCommands(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewWorkflowLogger(&buf)
	l.Error("bad tag: %s", "v1.0.0")
	if got := buf.String(); got != "::error::bad tag: v1.0.0\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWorkflowLoggerEscapesUntrustedData(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "percent", input: "100%", want: "100%25"},
		{name: "carriage_return", input: "a\rb", want: "a%0Db"},
		{name: "newline", input: "a\nb", want: "a%0Ab"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := escapeWorkflowData(tc.input); got != tc.want {
				t.Fatalf("escapeWorkflowData(%q)=%q want=%q", tc.input, got, tc.want)
			}
		})
	}
}

func TestWorkflowLoggerSafeOutputEscapesInjectedCommands(t *testing.T) {
	t.Parallel()
	l := NewWorkflowLogger(&bytes.Buffer{})
	got := l.SafeOutput("::error::fake\nreal data")
	if strings.Contains(got, "\n") {
		t.Fatalf("SafeOutput must neutralize embedded newlines, got %q", got)
	}
}
