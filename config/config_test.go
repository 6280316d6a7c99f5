// SPDX-License-Identifier: AGPL-3.0-only
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocateEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.toml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvOverride, path)

	got, err := Locate("tuning")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != path {
		t.Errorf("Locate() = %q, want %q", got, path)
	}
}

func TestLocateEnvOverrideMissingFile(t *testing.T) {
	t.Setenv(EnvOverride, filepath.Join(t.TempDir(), "absent.toml"))
	if _, err := Locate("tuning"); err == nil {
		t.Fatal("expected error when TUNING_CONFIG points at a nonexistent file")
	}
}

func TestLocateFallsBackToDotfiles(t *testing.T) {
	t.Setenv(EnvOverride, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "no-xdg-config-here"))

	target := filepath.Join(home, ".dotfiles", "tuning", "main.toml")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("# empty\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Locate("tuning")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != target {
		t.Errorf("Locate() = %q, want %q", got, target)
	}
}

func TestLocateNoCandidatesIsAnError(t *testing.T) {
	t.Setenv(EnvOverride, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "no-xdg-config-here"))

	if _, err := Locate("tuning"); err == nil {
		t.Fatal("expected error when no config file exists anywhere")
	}
}

func TestReadReturnsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.toml")
	want := "[[jobs]]\nname = \"x\"\n"
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != want {
		t.Errorf("Read() = %q, want %q", got, want)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error reading a nonexistent file")
	}
}
