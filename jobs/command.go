// SPDX-License-Identifier: AGPL-3.0-only
package jobs

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// stdioMu is the process-global lock serializing Command job output.
// Workers may run Command jobs concurrently; without this, their stdout
// and stderr would interleave byte-by-byte. File jobs never take this
// lock. It is intentionally unexported: the scheduler does not need to
// know it exists, only that Command.Execute() behaves as if it were the
// sole writer while it runs.
var stdioMu sync.Mutex

// Execute spawns the command (idempotently honoring Creates/Removes),
// streams its stdout/stderr through to this process's own, and reports
// Done on a zero exit or an error carrying the command line otherwise.
func (c *Command) Execute() (Status, error) {
	if c.Creates != "" {
		if _, err := os.Lstat(c.Creates); err == nil {
			return NewNoChange(fmt.Sprintf("%q already created", c.Creates)), nil
		}
	}
	if c.Removes != "" {
		if _, err := os.Lstat(c.Removes); os.IsNotExist(err) {
			return NewNoChange(fmt.Sprintf("%q already removed", c.Removes)), nil
		}
	}

	argv, err := c.resolvedArgv()
	if err != nil {
		return Status{}, &commandError{command: c.Command, err: err}
	}
	if len(argv) == 0 {
		return Status{}, &commandError{command: c.Command, err: fmt.Errorf("empty command")}
	}

	stdioMu.Lock()
	defer stdioMu.Unlock()

	cmd := exec.Command(argv[0], argv[1:]...)
	if c.Chdir != "" {
		cmd.Dir = c.Chdir
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Status{}, &commandError{command: c.Command, err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Status{}, &commandError{command: c.Command, err: err}
	}

	if err := cmd.Start(); err != nil {
		return Status{}, &commandError{command: c.Command, err: err}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(os.Stdout, stdout)
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(os.Stderr, stderr)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return Status{}, &commandError{command: strings.Join(argv, " "), err: err}
	}
	return DoneStatus, nil
}
