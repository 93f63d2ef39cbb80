// Package config parses and validates the six recognized validation knobs
// (spec §6) from a YAML file, with flag/env overrides, and matches ref and
// release names against the configured ignore patterns.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"si/tools/si/internal/model"
)

var ignorePatternShape = regexp.MustCompile(`^v\d{1,10}(\.\d{1,10}){0,2}(\.\*)?$`)

const maxIgnorePatternLen = 50

// FileConfig mirrors the on-disk YAML shape; zero values mean "not set" so
// flag/env overrides can be layered on top without clobbering explicit
// false/empty choices made in the file.
type FileConfig struct {
	CheckMinorVersion     string   `yaml:"checkMinorVersion"`
	CheckReleases         string   `yaml:"checkReleases"`
	CheckImmutability     string   `yaml:"checkImmutability"`
	CheckMarketplace      string   `yaml:"checkMarketplace"`
	IgnorePreviewReleases *bool    `yaml:"ignorePreviewReleases"`
	FloatingVersionsUse   string   `yaml:"floatingVersionsUse"`
	IgnoreVersions        []string `yaml:"ignoreVersions"`
}

// Load reads a YAML config file. A missing path is not an error: callers
// get the zero FileConfig and rely on defaults/overrides.
func Load(path string) (FileConfig, error) {
	var fc FileConfig
	path = strings.TrimSpace(path)
	if path == "" {
		return fc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config %q: %w", path, err)
	}
	return fc, nil
}

// Overrides carries CLI-flag values; empty string/nil means "not provided".
type Overrides struct {
	CheckMinorVersion     string
	CheckReleases         string
	CheckImmutability     string
	CheckMarketplace      string
	IgnorePreviewReleases *bool
	FloatingVersionsUse   string
	IgnoreVersions        []string
}

// Resolve merges file config and CLI overrides (overrides win), applies
// defaults, and validates the result. A configuration error here means the
// core never runs (spec §7's "configuration error" taxonomy entry).
func Resolve(fc FileConfig, ov Overrides) (model.Config, error) {
	cfg := model.Config{
		CheckMinorVersion:     model.CheckError,
		CheckReleases:         model.CheckError,
		CheckImmutability:     model.CheckError,
		CheckMarketplace:      model.CheckNone,
		IgnorePreviewReleases: false,
		FloatingVersionsUse:   model.FloatingUseTags,
	}

	if v := firstNonEmpty(ov.CheckMinorVersion, fc.CheckMinorVersion); v != "" {
		mode, err := parseCheckMode("checkMinorVersion", v)
		if err != nil {
			return cfg, err
		}
		cfg.CheckMinorVersion = mode
	}
	if v := firstNonEmpty(ov.CheckReleases, fc.CheckReleases); v != "" {
		mode, err := parseCheckMode("checkReleases", v)
		if err != nil {
			return cfg, err
		}
		cfg.CheckReleases = mode
	}
	if v := firstNonEmpty(ov.CheckImmutability, fc.CheckImmutability); v != "" {
		mode, err := parseCheckMode("checkImmutability", v)
		if err != nil {
			return cfg, err
		}
		cfg.CheckImmutability = mode
	}
	if v := firstNonEmpty(ov.CheckMarketplace, fc.CheckMarketplace); v != "" {
		mode, err := parseCheckMode("checkMarketplace", v)
		if err != nil {
			return cfg, err
		}
		cfg.CheckMarketplace = mode
	}
	if ov.IgnorePreviewReleases != nil {
		cfg.IgnorePreviewReleases = *ov.IgnorePreviewReleases
	} else if fc.IgnorePreviewReleases != nil {
		cfg.IgnorePreviewReleases = *fc.IgnorePreviewReleases
	}
	if v := firstNonEmpty(ov.FloatingVersionsUse, fc.FloatingVersionsUse); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "tags":
			cfg.FloatingVersionsUse = model.FloatingUseTags
		case "branches":
			cfg.FloatingVersionsUse = model.FloatingUseBranches
		default:
			return cfg, fmt.Errorf("invalid floatingVersionsUse %q (expected tags|branches)", v)
		}
	}

	patterns := ov.IgnoreVersions
	if len(patterns) == 0 {
		patterns = fc.IgnoreVersions
	}
	for _, p := range patterns {
		if err := validateIgnorePattern(p); err != nil {
			return cfg, err
		}
	}
	cfg.IgnoreVersions = patterns

	return cfg, nil
}

func parseCheckMode(knob, raw string) (model.CheckMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "error":
		return model.CheckError, nil
	case "warning":
		return model.CheckWarning, nil
	case "none":
		return model.CheckNone, nil
	default:
		return "", fmt.Errorf("invalid %s %q (expected error|warning|none)", knob, raw)
	}
}

func validateIgnorePattern(pattern string) error {
	if len(pattern) > maxIgnorePatternLen {
		return fmt.Errorf("ignoreVersions pattern %q exceeds %d characters", pattern, maxIgnorePatternLen)
	}
	if !ignorePatternShape.MatchString(pattern) {
		return fmt.Errorf("ignoreVersions pattern %q does not match %s", pattern, ignorePatternShape.String())
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// MatchesIgnorePattern implements the glob-with-* semantics (spec Open
// Questions: the glob form is canonical, the regex-after-escaping form is
// not carried forward).
func MatchesIgnorePattern(name string, patterns []string) bool {
	for _, p := range patterns {
		if globMatch(p, name) {
			return true
		}
	}
	return false
}

func globMatch(pattern, name string) bool {
	return globMatchRunes([]rune(pattern), []rune(name))
}

func globMatchRunes(pattern, name []rune) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}
	if pattern[0] == '*' {
		if globMatchRunes(pattern[1:], name) {
			return true
		}
		for i := 0; i < len(name); i++ {
			if globMatchRunes(pattern[1:], name[i+1:]) {
				return true
			}
		}
		return false
	}
	if len(name) == 0 || pattern[0] != name[0] {
		return false
	}
	return globMatchRunes(pattern[1:], name[1:])
}
