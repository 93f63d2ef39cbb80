// Package marketplaceprobe implements the "marketplace publication probe"
// (spec §1): a function that fetches a public listing page and tells
// whether a given version appears as the current selection. It has no
// authenticated API to call, so it reads the same page a browser would.
package marketplaceprobe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"si/tools/si/internal/httpx"
)

// Prober fetches owner/repo's public marketplace listing page and reports
// whether version appears in it as the selected release. It implements
// internal/rules.Prober.
type Prober struct {
	BaseURL string // defaults to https://github.com/marketplace/actions
	Client  *http.Client
}

func New() *Prober {
	return &Prober{
		BaseURL: "https://github.com/marketplace/actions",
		Client:  httpx.SharedClient(15 * time.Second),
	}
}

// versionSelectedPattern matches the listing page's release-select markup
// for the tag the page currently has selected, e.g.
// `<option value="v2.1.0" selected>`.
var versionSelectedPattern = regexp.MustCompile(`value="([^"]+)"[^>]*\sselected\b`)

// IsPublished fetches the listing page for owner/repo and checks whether
// version is the option marked selected. inconclusive=true on any network
// or parse failure, so the rule that calls this never false-positives on a
// transient outage.
func (p *Prober) IsPublished(ctx context.Context, owner, repo, version string) (published bool, inconclusive bool, err error) {
	if p == nil || p.Client == nil {
		return false, true, nil
	}
	url := fmt.Sprintf("%s/%s-%s", p.BaseURL, owner, repo)
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if reqErr != nil {
		return false, true, reqErr
	}
	resp, doErr := p.Client.Do(req)
	if doErr != nil {
		return false, true, nil // network error: inconclusive, not a failure
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, false, nil // listing genuinely absent: not published
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, true, nil
	}
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return false, true, nil
	}
	match := versionSelectedPattern.FindSubmatch(body)
	if match == nil {
		return false, true, nil
	}
	return bytes.Equal(match[1], []byte(version)), false, nil
}
