// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every metric it selects must be known.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/ptchr/magento2-rest-client/tools/dashgen/rules"
)

// Result collects validation problems. Errors fail generation; warnings
// are informational.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Dashboard validates every query target in the dashboard, including
// panels nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.errorf("marshaling dashboard: %v", err)
		return r
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		r.errorf("decoding dashboard: %v", err)
		return r
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		r.Warnings = append(r.Warnings, "dashboard has no query targets")
	}
	for _, expr := range exprs {
		checkExpr(&r, "dashboard", expr, known)
	}
	return r
}

// Rules validates every rule expression in the CR.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			if name == "" {
				r.errorf("%s/%s: rule has neither record nor alert name", cr.Metadata.Name, g.Name)
				continue
			}
			checkExpr(&r, cr.Metadata.Name+"/"+name, rule.Expr, known)
		}
	}
	return r
}

func checkExpr(r *Result, where, expr string, known map[string]bool) {
	if expr == "" {
		r.errorf("%s: empty expression", where)
		return
	}
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		r.errorf("%s: parsing %q: %v", where, expr, err)
		return
	}
	for _, name := range Metrics(parsed) {
		if !known[name] {
			r.errorf("%s: unknown metric %q", where, name)
		}
	}
}

// Metrics returns the sorted, de-duplicated metric names selected by expr.
func Metrics(expr parser.Expr) []string {
	seen := map[string]bool{}
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[vs.Name] = true
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// collectExprs walks decoded JSON and returns every string under an "expr" key.
func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := t[k].(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(t[k], out)
		}
	case []any:
		for _, e := range t {
			out = collectExprs(e, out)
		}
	}
	return out
}
