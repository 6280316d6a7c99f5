// SPDX-License-Identifier: AGPL-3.0-only
package main

import (
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"tuning/config"
	"tuning/facts"
	"tuning/internal/present"
	"tuning/jobs"
	"tuning/parser"
	"tuning/runner"
	"tuning/template"
)

const appName = "tuning"

func main() {
	app := &cli.App{
		Name:  appName,
		Usage: "declarative, idempotent local automation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to main.toml, overriding OS conventions and " + config.EnvOverride,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "worker pool size (0 picks runtime.NumCPU())",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colorized status lines",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		var err error
		path, err = config.Locate(appName)
		if err != nil {
			return err
		}
	}
	log.Printf("reading: %s", path)

	raw, err := config.Read(path)
	if err != nil {
		return err
	}

	hostFacts, err := facts.Gather()
	if err != nil {
		return err
	}

	rendered, err := template.Render(raw, hostFacts)
	if err != nil {
		return err
	}

	doc, err := parser.Parse(rendered)
	if err != nil {
		return err
	}

	runnables := make([]runner.Runnable, len(doc.Jobs))
	for i, j := range doc.Jobs {
		runnables[i] = j
	}

	r := &runner.Runner{
		Workers: c.Int("workers"),
		Printer: present.New(os.Stdout, c.Bool("no-color")),
	}
	results := r.Run(runnables)

	if anyErrored(results) {
		os.Exit(1)
	}
	return nil
}

func anyErrored(results map[string]jobs.Result) bool {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := false
	for _, name := range names {
		if results[name].Error() != nil {
			failed = true
		}
	}
	return failed
}
