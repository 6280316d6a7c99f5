// SPDX-License-Identifier: AGPL-3.0-only

// Package runner implements the scheduler: a fixed-size worker pool that
// advances jobs through the status lifecycle, gating each on its
// declared prerequisites, until every job has settled.
package runner

import (
	"sync"

	"tuning/internal/present"
	"tuning/jobs"
)

// Runnable is the capability surface the scheduler needs from a job. It
// is satisfied by *jobs.Job; tests substitute fakes that implement it
// directly.
type Runnable interface {
	Name() string
	Needs() []string
	When() bool
	Execute() (jobs.Status, error)
}

// DefaultWorkers is used when Runner.Workers is left at zero. It derives
// from the host's CPU count, resolving the original tool's "TODO: detect
// number of CPUs" in the direction the TODO pointed.
func DefaultWorkers() int {
	if n := numCPU(); n > 0 {
		return n
	}
	return 1
}

// Runner runs a job list to completion.
type Runner struct {
	// Workers is the size of the worker pool. Zero means DefaultWorkers().
	Workers int
	// Printer, if set, receives a line for every status transition. Nil
	// disables printing (used by tests that only care about results).
	Printer *present.Printer
}

// Run advances every job in jobList to a settled status and returns the
// final status-or-error for each job, keyed by name. It returns once
// every job has settled; it never blocks forever, even when jobs form a
// dependency cycle (those jobs simply remain Blocked, which is settled).
func (r *Runner) Run(jobList []Runnable) map[string]jobs.Result {
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	results := make(map[string]jobs.Result, len(jobList))
	for _, j := range jobList {
		if len(j.Needs()) == 0 {
			results[j.Name()] = jobs.Ok(jobs.PendingStatus)
		} else {
			results[j.Name()] = jobs.Ok(jobs.BlockedStatus)
		}
	}

	remaining := append([]Runnable(nil), jobList...)

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			r.work(&mu, &remaining, results)
		}()
	}
	wg.Wait()

	return results
}

func (r *Runner) work(mu *sync.Mutex, remaining *[]Runnable, results map[string]jobs.Result) {
	for {
		job, ok := r.takeNext(mu, remaining, results)
		if !ok {
			return
		}

		status, err := job.Execute()

		mu.Lock()
		var res jobs.Result
		if err != nil {
			res = jobs.Err(err)
		} else {
			res = jobs.Ok(status)
		}
		results[job.Name()] = res
		r.print(job.Name(), res)
		mu.Unlock()
	}
}

// takeNext performs one atomic "scan, advance, take" step under the
// scheduler lock: it promotes Skipped/Pending transitions, checks the
// termination condition, and if a job is available, removes it from the
// slice and marks it InProgress before returning it. A single lock
// guards both the job list and the status map, so the readiness
// recomputation, the pending-pick, and the take happen as one step; jobs
// then execute outside the lock so workers run truly in parallel.
func (r *Runner) takeNext(mu *sync.Mutex, remaining *[]Runnable, results map[string]jobs.Result) (Runnable, bool) {
	mu.Lock()
	defer mu.Unlock()

	list := *remaining

	for _, j := range list {
		if !j.When() {
			results[j.Name()] = jobs.Ok(jobs.SkippedStatus)
		}
	}

	for _, j := range list {
		if !results[j.Name()].Equal(jobs.BlockedStatus) {
			continue
		}
		ready := true
		for _, need := range j.Needs() {
			if !results[need].IsDone() {
				ready = false
				break
			}
		}
		if ready {
			results[j.Name()] = jobs.Ok(jobs.PendingStatus)
		}
	}

	if allSettled(results) {
		return nil, false
	}

	for i, j := range list {
		if results[j.Name()].Equal(jobs.PendingStatus) {
			*remaining = append(append([]Runnable(nil), list[:i]...), list[i+1:]...)
			results[j.Name()] = jobs.Ok(jobs.InProgressStat)
			r.print(j.Name(), results[j.Name()])
			return j, true
		}
	}

	// Nothing Pending right now; whatever's left must be InProgress on
	// another worker. Nothing for this worker to do.
	return nil, false
}

func allSettled(results map[string]jobs.Result) bool {
	for _, res := range results {
		if !res.IsSettled() {
			return false
		}
	}
	return true
}

func (r *Runner) print(name string, res jobs.Result) {
	if r.Printer == nil {
		return
	}
	if err := res.Error(); err != nil {
		r.Printer.Line(name, err.Error(), true, false)
		return
	}
	status, _ := res.Status()
	r.Printer.Line(name, status.String(), false, status.IsChanged())
}
