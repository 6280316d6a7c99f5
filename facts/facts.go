// SPDX-License-Identifier: AGPL-3.0-only

// Package facts gathers host-observed data exposed to the template
// engine: directory conventions and OS family.
package facts

import (
	"os"
	"runtime"
)

// Facts is the data the template renderer exposes to config authors.
type Facts struct {
	CacheDir    string
	ConfigDir   string
	HomeDir     string
	IsOSLinux   bool
	IsOSMacOS   bool
	IsOSWindows bool
}

// Gather collects Facts from the host. It returns an error when any of
// the standard library's directory lookups fails (for example when
// $HOME is unset on a Unix host); main treats a gathering failure as a
// configuration error that aborts the run before any job executes.
func Gather() (Facts, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return Facts{}, err
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Facts{}, err
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Facts{}, err
	}

	return Facts{
		CacheDir:    cacheDir,
		ConfigDir:   configDir,
		HomeDir:     homeDir,
		IsOSLinux:   runtime.GOOS == "linux",
		IsOSMacOS:   runtime.GOOS == "darwin",
		IsOSWindows: runtime.GOOS == "windows",
	}, nil
}
