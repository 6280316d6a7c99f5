// SPDX-License-Identifier: AGPL-3.0-only

// Package parser turns rendered config text into a structured job list,
// enforcing the tagged union on `type`, required field presence, and the
// `state` enum — the validation TOML's static decoding can't express on
// its own, the way a source-language `#[serde(tag = "type")]` derive
// would.
package parser

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"tuning/jobs"
)

// Main is the parsed config document: an ordered job list.
type Main struct {
	Jobs []*jobs.Job
}

type rawDocument struct {
	Jobs []rawJob `toml:"jobs"`
}

type rawJob struct {
	Name  string   `toml:"name"`
	Needs []string `toml:"needs"`
	When  *bool    `toml:"when"`
	Type  string   `toml:"type"`

	Command string   `toml:"command"`
	Argv    []string `toml:"argv"`
	Chdir   string   `toml:"chdir"`
	Creates string   `toml:"creates"`
	Removes string   `toml:"removes"`

	Path  string `toml:"path"`
	State string `toml:"state"`
	Src   string `toml:"src"`
	Force *bool  `toml:"force"`
}

var validStates = map[jobs.FileState]bool{
	jobs.StateAbsent:    true,
	jobs.StateDirectory: true,
	jobs.StateFile:      true,
	jobs.StateHard:      true,
	jobs.StateLink:      true,
	jobs.StateTouch:     true,
}

// Parse decodes text as the `[[jobs]]` TOML document and validates it
// into a Main. Every error returned here is a configuration error: it
// aborts the run before any job executes.
func Parse(text string) (*Main, error) {
	var doc rawDocument
	if _, err := toml.Decode(text, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	seen := make(map[string]bool, len(doc.Jobs))
	built := make([]*jobs.Job, 0, len(doc.Jobs))

	for i, rj := range doc.Jobs {
		job, err := buildJob(rj)
		if err != nil {
			return nil, fmt.Errorf("parse: jobs[%d]: %w", i, err)
		}
		name := job.Name()
		if seen[name] {
			return nil, fmt.Errorf("parse: jobs[%d]: duplicate job name %q", i, name)
		}
		seen[name] = true
		built = append(built, job)
	}

	for i, rj := range doc.Jobs {
		for _, need := range rj.Needs {
			if !seen[need] {
				return nil, fmt.Errorf("parse: jobs[%d]: needs %q, which is not a declared job", i, need)
			}
		}
	}

	return &Main{Jobs: built}, nil
}

func buildJob(rj rawJob) (*jobs.Job, error) {
	when := true
	if rj.When != nil {
		when = *rj.When
	}
	force := false
	if rj.Force != nil {
		force = *rj.Force
	}

	switch rj.Type {
	case "command":
		if rj.Command == "" {
			return nil, fmt.Errorf(`type="command" requires "command"`)
		}
		spec := &jobs.Command{
			Command: rj.Command,
			Argv:    rj.Argv,
			Chdir:   rj.Chdir,
			Creates: rj.Creates,
			Removes: rj.Removes,
		}
		return jobs.NewJob(rj.Name, rj.Needs, when, spec), nil

	case "file":
		if rj.Path == "" {
			return nil, fmt.Errorf(`type="file" requires "path"`)
		}
		if rj.State == "" {
			return nil, fmt.Errorf(`type="file" requires "state"`)
		}
		state := jobs.FileState(rj.State)
		if !validStates[state] {
			return nil, fmt.Errorf("type=%q: unrecognized state %q", rj.Type, rj.State)
		}
		spec := &jobs.File{
			Path:  rj.Path,
			State: state,
			Src:   rj.Src,
			Force: force,
		}
		return jobs.NewJob(rj.Name, rj.Needs, when, spec), nil

	case "":
		return nil, fmt.Errorf(`missing "type"`)
	default:
		return nil, fmt.Errorf("unrecognized type %q", rj.Type)
	}
}
