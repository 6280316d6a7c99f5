// SPDX-License-Identifier: AGPL-3.0-only

// Package jobs implements the two job variants (Command, File), the
// status algebra the scheduler reasons about, and the uniform envelope
// that lets the scheduler treat both variants identically.
package jobs

import (
	"strings"

	"github.com/google/shlex"
)

// Executor is the capability surface every job variant exposes to the
// scheduler: no inheritance, just a tagged union behind one interface.
type Executor interface {
	Execute() (Status, error)
	Summary() string
}

// Job is the uniform envelope the scheduler operates on.
type Job struct {
	name  string
	needs []string
	when  bool
	spec  Executor
}

// NewJob builds an envelope around a spec. name may be empty, in which
// case Name() derives a stable summary from the spec. when defaults to
// true when unset by the caller (the parser is responsible for applying
// that default before construction).
func NewJob(name string, needs []string, when bool, spec Executor) *Job {
	return &Job{name: name, needs: needs, when: when, spec: spec}
}

// Name returns the declared name, or a deterministic summary of the spec.
func (j *Job) Name() string {
	if j.name != "" {
		return j.name
	}
	return j.spec.Summary()
}

// Needs returns the prerequisite job names, possibly empty.
func (j *Job) Needs() []string {
	return j.needs
}

// When returns the declared guard.
func (j *Job) When() bool {
	return j.when
}

// Execute delegates to the contained spec.
func (j *Job) Execute() (Status, error) {
	return j.spec.Execute()
}

// Command is the spec for running an external process idempotently.
type Command struct {
	Command string
	Argv    []string
	Chdir   string
	Creates string
	Removes string
}

// resolvedArgv returns the resolved executable and argument list: the declared
// Argv if present, otherwise Command tokenized shell-style so that a
// one-line `command = "rsync -a src/ dst/"` needs no separate argv array.
func (c *Command) resolvedArgv() ([]string, error) {
	if len(c.Argv) > 0 {
		return append([]string{c.Command}, c.Argv...), nil
	}
	if !strings.ContainsAny(c.Command, " \t") {
		return []string{c.Command}, nil
	}
	return shlex.Split(c.Command)
}

// Summary renders `[guards] [cd DIR &&] CMD ARGS`, shell-quoting any
// argument that itself contains whitespace.
func (c *Command) Summary() string {
	var b strings.Builder
	if c.Creates != "" {
		b.WriteString("[creates=" + c.Creates + "] ")
	}
	if c.Removes != "" {
		b.WriteString("[removes=" + c.Removes + "] ")
	}
	if c.Chdir != "" {
		b.WriteString("cd " + c.Chdir + " && ")
	}
	b.WriteString(quoteArg(c.Command))
	for _, a := range c.Argv {
		b.WriteString(" ")
		b.WriteString(quoteArg(a))
	}
	return b.String()
}

func quoteArg(a string) string {
	if a == "" {
		return `""`
	}
	if strings.ContainsAny(a, " \t\"'") {
		return `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
	}
	return a
}
