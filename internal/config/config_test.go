package config

import (
	"testing"

	"si/tools/si/internal/model"
)

func TestMatchesIgnorePattern(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		pattern  string
		input    string
		wantTrue bool
	}{
		{name: "exact", pattern: "v1.2.3", input: "v1.2.3", wantTrue: true},
		{name: "wildcard_patch", pattern: "v0.*", input: "v0.9.9", wantTrue: true},
		{name: "wildcard_no_match_other_major", pattern: "v0.*", input: "v1.0.0", wantTrue: false},
		{name: "trailing_wildcard_matches_empty_suffix", pattern: "v1.2.*", input: "v1.2", wantTrue: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MatchesIgnorePattern(tc.input, []string{tc.pattern})
			if got != tc.wantTrue {
				t.Fatalf("MatchesIgnorePattern(%q, [%q])=%v want=%v", tc.input, tc.pattern, got, tc.wantTrue)
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Resolve(FileConfig{}, Overrides{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.CheckMinorVersion != model.CheckError {
		t.Fatalf("CheckMinorVersion default=%v want=error", cfg.CheckMinorVersion)
	}
	if cfg.CheckMarketplace != model.CheckNone {
		t.Fatalf("CheckMarketplace default=%v want=none", cfg.CheckMarketplace)
	}
	if cfg.FloatingVersionsUse != model.FloatingUseTags {
		t.Fatalf("FloatingVersionsUse default=%v want=tags", cfg.FloatingVersionsUse)
	}
}

func TestResolveOverridesWinOverFile(t *testing.T) {
	t.Parallel()
	fc := FileConfig{CheckReleases: "error"}
	ov := Overrides{CheckReleases: "none"}
	cfg, err := Resolve(fc, ov)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.CheckReleases != model.CheckNone {
		t.Fatalf("CheckReleases=%v want=none (override should win)", cfg.CheckReleases)
	}
}

func TestResolveInvalidCheckMode(t *testing.T) {
	t.Parallel()
	_, err := Resolve(FileConfig{}, Overrides{CheckReleases: "sometimes"})
	if err == nil {
		t.Fatal("expected an error for an invalid checkReleases value")
	}
}

func TestResolveInvalidIgnorePattern(t *testing.T) {
	t.Parallel()
	_, err := Resolve(FileConfig{}, Overrides{IgnoreVersions: []string{"not-a-version"}})
	if err == nil {
		t.Fatal("expected an error for an ignoreVersions pattern that doesn't match the shape")
	}
}
