// SPDX-License-Identifier: AGPL-3.0-only
package jobs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCommandDoneOnZeroExit(t *testing.T) {
	c := &Command{Command: "true"}
	status, err := c.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !status.Equal(DoneStatus) {
		t.Errorf("status = %v, want Done", status)
	}
}

func TestCommandErrorOnNonZeroExit(t *testing.T) {
	c := &Command{Command: "false"}
	if _, err := c.Execute(); err == nil {
		t.Fatal("expected error on non-zero exit")
	}
}

func TestCommandErrorOnMissingExecutable(t *testing.T) {
	c := &Command{Command: "this-command-does-not-exist-anywhere"}
	if _, err := c.Execute(); err == nil {
		t.Fatal("expected error when the executable cannot be found")
	}
}

func TestCommandCreatesGuardSkipsExecution(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Command{Command: "false", Creates: marker}
	status, err := c.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := NewNoChange(`"` + marker + `" already created`)
	if !status.Equal(want) {
		t.Errorf("status = %v, want %v", status, want)
	}
}

func TestCommandRemovesGuardSkipsExecution(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "gone-already")

	c := &Command{Command: "false", Removes: marker}
	status, err := c.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !status.Equal(NewNoChange(`"` + marker + `" already removed`)) {
		t.Errorf("status = %v, want NoChange", status)
	}
}

func TestCommandOneLinerIsShellTokenized(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "created-by-touch")
	c := &Command{Command: "touch " + target}

	if _, err := c.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected touch's argument to have been tokenized and honored: %v", err)
	}
}

func TestCommandSummaryQuotesWhitespace(t *testing.T) {
	c := &Command{Command: "echo", Argv: []string{"hello world"}, Creates: "/tmp/x"}
	want := `[creates=/tmp/x] echo "hello world"`
	if got := c.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
