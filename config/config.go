// SPDX-License-Identifier: AGPL-3.0-only

// Package config locates and reads the user's raw config document. It
// knows nothing about TOML, templates, or jobs — just where the text
// lives and how to read it, matching the distilled spec's treatment of
// the config loader as an external collaborator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvOverride, when set, takes priority over every OS convention.
const EnvOverride = "TUNING_CONFIG"

// Locate finds the config file for appName: an explicit TUNING_CONFIG
// path, then "<user config dir>/<appName>/main.toml", then the
// dotfiles-style fallback "<home>/.dotfiles/<appName>/main.toml".
func Locate(appName string) (string, error) {
	if p := os.Getenv(EnvOverride); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config: %s=%s: %w", EnvOverride, p, err)
		}
		return p, nil
	}

	var candidates []string

	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appName, "main.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".dotfiles", appName, "main.toml"))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("config: no config found (tried: %v)", candidates)
}

// Read returns the raw text at path.
func Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return string(b), nil
}
