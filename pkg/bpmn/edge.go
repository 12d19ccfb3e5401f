package bpmn

import (
	"fmt"
	"strings"
)

// conditionBreaks are the operators after which a condition label wraps.
var conditionBreaks = []string{"&&", "||", "=="}

// Edge is a sequence flow between two items.
type Edge struct {
	id        string
	source    string
	target    string
	name      string
	condition string
}

// NewEdge creates an edge from source to target. condition is used verbatim
// as a label line; pass it through [TidyCondition] first when it comes from a
// conditionExpression.
func NewEdge(id, source, target, name, condition string) *Edge {
	return &Edge{id: id, source: source, target: target, name: name, condition: condition}
}

func (e *Edge) ID() string         { return e.id }
func (e *Edge) Source() string     { return e.source }
func (e *Edge) Target() string     { return e.target }
func (e *Edge) Name() string       { return e.name }
func (e *Edge) Condition() string  { return e.condition }
func (e *Edge) Adjacent() []string { return []string{e.source, e.target} }

// TidyCondition turns a ${...} expression into label text: the delimiters
// are stripped, backslashes and quotes escaped and a line break added after
// each &&, || and ==.
func TidyCondition(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimPrefix(expr, "${")
	expr = strings.TrimSuffix(expr, "}")
	expr = strings.ReplaceAll(expr, `\`, `\\`)
	expr = strings.ReplaceAll(expr, `"`, `\"`)
	for _, op := range conditionBreaks {
		expr = strings.ReplaceAll(expr, op, op+lineBreak)
	}
	return expr
}

// Label returns the edge label lines: name, condition and, with ShowFlows,
// the edge id.
func (e *Edge) Label(opts Options) string {
	var parts []string
	if e.name != "" {
		parts = append(parts, escapeLabel(e.name))
	}
	if e.condition != "" {
		parts = append(parts, e.condition)
	}
	if opts.ShowFlows {
		parts = append(parts, escapeLabel(e.id))
	}
	return strings.Join(parts, lineBreak)
}

// dot resolves both endpoints through the top-level lookup so that edges
// touching a subprocess attach to its inner end and start events.
func (e *Edge) dot(r *renderer) string {
	source, target := e.source, e.target
	if ep, ok := r.endpoint(source); ok {
		source = ep.EndNodeID()
	}
	if ep, ok := r.endpoint(target); ok {
		target = ep.StartNodeID()
	}

	frag := dotID(source) + " -> " + dotID(target)
	if label := e.Label(r.opts); label != "" {
		frag += fmt.Sprintf(` [label="%s"]`, label)
	}
	return frag
}
