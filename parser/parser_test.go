// SPDX-License-Identifier: AGPL-3.0-only
package parser

import "testing"

func TestParseCommandJob(t *testing.T) {
	doc, err := Parse(`
[[jobs]]
name = "greet"
type = "command"
command = "echo"
argv = ["hi"]
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Jobs) != 1 {
		t.Fatalf("len(doc.Jobs) = %d, want 1", len(doc.Jobs))
	}
	if got := doc.Jobs[0].Name(); got != "greet" {
		t.Errorf("Name() = %q, want %q", got, "greet")
	}
}

func TestParseFileJob(t *testing.T) {
	doc, err := Parse(`
[[jobs]]
type = "file"
path = "/tmp/example"
state = "touch"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.Jobs[0].Name(); got != "touch /tmp/example" {
		t.Errorf("Name() = %q, want derived summary", got)
	}
}

func TestParseDefaultsWhenTrue(t *testing.T) {
	doc, err := Parse(`
[[jobs]]
name = "a"
type = "command"
command = "true"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !doc.Jobs[0].When() {
		t.Error("When() should default to true")
	}
}

func TestParseRespectsDeclaredWhenFalse(t *testing.T) {
	doc, err := Parse(`
[[jobs]]
name = "a"
type = "command"
command = "true"
when = false
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Jobs[0].When() {
		t.Error("When() should be false when declared so")
	}
}

func TestParseMissingType(t *testing.T) {
	_, err := Parse(`
[[jobs]]
name = "a"
command = "true"
`)
	if err == nil {
		t.Fatal("expected error for missing type")
	}
}

func TestParseUnrecognizedType(t *testing.T) {
	_, err := Parse(`
[[jobs]]
type = "network"
`)
	if err == nil {
		t.Fatal("expected error for unrecognized type")
	}
}

func TestParseCommandRequiresCommand(t *testing.T) {
	_, err := Parse(`
[[jobs]]
type = "command"
`)
	if err == nil {
		t.Fatal(`expected error: type="command" requires "command"`)
	}
}

func TestParseFileRequiresPathAndState(t *testing.T) {
	if _, err := Parse(`
[[jobs]]
type = "file"
state = "touch"
`); err == nil {
		t.Fatal(`expected error: type="file" requires "path"`)
	}
	if _, err := Parse(`
[[jobs]]
type = "file"
path = "/tmp/x"
`); err == nil {
		t.Fatal(`expected error: type="file" requires "state"`)
	}
}

func TestParseFileUnrecognizedState(t *testing.T) {
	_, err := Parse(`
[[jobs]]
type = "file"
path = "/tmp/x"
state = "teleport"
`)
	if err == nil {
		t.Fatal("expected error for unrecognized state")
	}
}

// A link job with no src is accepted at parse time; the original tool
// treats this as an execution-time error local to that job, not a
// config error that aborts the whole run.
func TestParseFileLinkWithoutSrcIsNotAParseError(t *testing.T) {
	doc, err := Parse(`
[[jobs]]
type = "file"
path = "/tmp/x"
state = "link"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := doc.Jobs[0].Execute(); err == nil {
		t.Fatal("expected the missing-src error to surface at execution time instead")
	}
}

func TestParseDuplicateNames(t *testing.T) {
	_, err := Parse(`
[[jobs]]
name = "a"
type = "command"
command = "true"

[[jobs]]
name = "a"
type = "command"
command = "true"
`)
	if err == nil {
		t.Fatal("expected error for duplicate job name")
	}
}

func TestParseDanglingNeeds(t *testing.T) {
	_, err := Parse(`
[[jobs]]
name = "a"
needs = ["ghost"]
type = "command"
command = "true"
`)
	if err == nil {
		t.Fatal("expected error for a need referencing an undeclared job")
	}
}

func TestParseNeedsResolveAcrossJobs(t *testing.T) {
	doc, err := Parse(`
[[jobs]]
name = "a"
needs = ["b"]
type = "command"
command = "true"

[[jobs]]
name = "b"
type = "command"
command = "true"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.Jobs[0].Needs(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Needs() = %v, want [b]", got)
	}
}

func TestParsePreservesJobTypeRoundTrip(t *testing.T) {
	doc, err := Parse(`
[[jobs]]
name = "link-it"
type = "file"
path = "/tmp/link"
state = "link"
src = "/tmp/source"
force = true
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.Jobs[0].Name(); got != "link-it" {
		t.Errorf("Name() = %q, want %q", got, "link-it")
	}
}
