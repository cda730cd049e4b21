package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/aiocean/docsync/models"
	"github.com/titanous/json5"
)

// SiteTargets re-points a built-in site at another base URL or target list.
type SiteTargets struct {
	BaseURL string          `json:"base_url"`
	Targets []models.Target `json:"targets"`
}

// Targets maps a site name to its overrides.
type Targets map[string]SiteTargets

func localName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// ReadTargets reads a json5 targets file and merges <name>.local.<ext> over
// it when that file exists. At least one of the two must exist.
func ReadTargets(name string) (Targets, error) {
	out := Targets{}
	found := false

	contents, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	if len(contents) > 0 {
		if err := json5.Unmarshal(contents, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		found = true
	}

	local := localName(name)
	contents, err = os.ReadFile(local)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	if len(contents) > 0 {
		override := Targets{}
		if err := json5.Unmarshal(contents, &override); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", local, err)
		}
		for site, o := range override {
			merged := out[site]
			if err := mergo.Merge(&merged, o, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("failed to merge %s: %w", local, err)
			}
			out[site] = merged
		}
		found = true
	}

	if !found {
		return nil, os.ErrNotExist
	}
	return out, nil
}
