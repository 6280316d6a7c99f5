// SPDX-License-Identifier: AGPL-3.0-only

// Package template renders a raw config document against gathered host
// facts before it reaches the parser. The core must never depend on
// template syntax; this package is the sole place that knows it.
package template

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"tuning/facts"
)

// dirExpr matches a bare `{{ .XxxDir }}` (or .HomeDir) action that isn't
// already piped through a filter, so Render can inject `| addslashes`
// ahead of it automatically. Config authors never have to remember to
// escape directories themselves; this mirrors the upstream tool's own
// regex-based auto-injection of an escaping filter ahead of every `_dir`
// expression.
var dirExpr = regexp.MustCompile(`\{\{-?\s*\.(\w*Dir)\s*-?\}\}`)

// Render substitutes facts and evaluates helper functions in input,
// returning the rendered text. A missing variable or a template syntax
// error aborts with an error; so does rendered output that doesn't even
// look like valid TOML (a cheap consistency check — the authoritative
// parse happens later, in the parser package, which this package does
// not otherwise depend on).
func Render(input string, f facts.Facts) (string, error) {
	rewritten := dirExpr.ReplaceAllString(input, `{{ .$1 | addslashes }}`)

	funcs := template.FuncMap{
		"addslashes":    addslashes,
		"hasExecutable": hasExecutable,
	}

	t, err := template.New("config").Funcs(funcs).Parse(rewritten)
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, f); err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	output := buf.String()

	var probe map[string]any
	if _, err := toml.Decode(output, &probe); err != nil {
		return "", fmt.Errorf("template: rendered output is not valid TOML: %w", err)
	}

	return output, nil
}

func addslashes(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

func hasExecutable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
