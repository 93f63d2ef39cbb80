package model

import "testing"

func TestNewVersionRef(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		raw       string
		wantLevel VersionLevel
		wantMajor int
		wantMinor int
		wantPatch int
	}{
		{name: "patch", raw: "v1.2.3", wantLevel: LevelPatch, wantMajor: 1, wantMinor: 2, wantPatch: 3},
		{name: "minor", raw: "v1.2", wantLevel: LevelMinor, wantMajor: 1, wantMinor: 2},
		{name: "major", raw: "v1", wantLevel: LevelMajor, wantMajor: 1},
		{name: "no_v_prefix", raw: "2.0.0", wantLevel: LevelPatch, wantMajor: 2},
		{name: "latest", raw: "latest", wantLevel: LevelNone},
		{name: "non_numeric", raw: "vmain", wantLevel: LevelNone},
		{name: "too_many_parts_truncates", raw: "v1.2.3.4", wantLevel: LevelPatch, wantMajor: 1, wantMinor: 2, wantPatch: 3},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v := NewVersionRef(tc.raw, "refs/tags/"+tc.raw, "sha1", RefKindTag)
			if v.Level != tc.wantLevel {
				t.Fatalf("Level=%v want=%v", v.Level, tc.wantLevel)
			}
			if v.Major != tc.wantMajor || v.Minor != tc.wantMinor || v.Patch != tc.wantPatch {
				t.Fatalf("got major=%d minor=%d patch=%d want major=%d minor=%d patch=%d",
					v.Major, v.Minor, v.Patch, tc.wantMajor, tc.wantMinor, tc.wantPatch)
			}
		})
	}
}

func TestVersionRefFloatingName(t *testing.T) {
	t.Parallel()
	v := NewVersionRef("v1.2.3", "refs/tags/v1.2.3", "sha1", RefKindTag)
	if got := v.FloatingName(LevelMajor); got != "v1" {
		t.Fatalf("major floating name=%q want v1", got)
	}
	if got := v.FloatingName(LevelMinor); got != "v1.2" {
		t.Fatalf("minor floating name=%q want v1.2", got)
	}
	if got := v.FloatingName(LevelNone); got != "" {
		t.Fatalf("none floating name=%q want empty", got)
	}
}
