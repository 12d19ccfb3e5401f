package bpmn

import (
	"bufio"
	"io"
	"strings"
)

// Options controls optional parts of the DOT labels.
type Options struct {
	// ShowFlows appends the sequence flow id to every edge label.
	ShowFlows bool
	// ShowPackageNames prints fully qualified Java class names.
	ShowPackageNames bool
	// ShowTaskListeners lists user task listeners under the task name.
	ShowTaskListeners bool
}

// Lookup resolves top-level item ids while rendering.
type Lookup interface {
	Item(id string) (Item, bool)
}

// lineBreak is the DOT escape for a centred line break inside a label.
const lineBreak = `\n`

var dotHeaders = []string{
	`fontname = "sans"`,
	`node[shape = "box", fontname = "sans"]`,
	`edge[fontname = "sans"]`,
}

// renderer carries the state of a single DOT rendering: the lookup used for
// edge endpoints, the label options and the next cluster index.
type renderer struct {
	lookup   Lookup
	opts     Options
	clusters int
}

func (r *renderer) nextCluster() int {
	i := r.clusters
	r.clusters++
	return i
}

// endpoint returns the Endpoint registered under id in the top-level graph.
// Nested subprocesses are not visible here.
func (r *renderer) endpoint(id string) (Endpoint, bool) {
	if r.lookup == nil {
		return nil, false
	}
	it, ok := r.lookup.Item(id)
	if !ok {
		return nil, false
	}
	ep, ok := it.(Endpoint)
	return ep, ok
}

// fragments renders every item in insertion order, one per line.
func (g *Graph) fragments(r *renderer) string {
	frags := make([]string, 0, g.Len())
	for _, it := range g.Items() {
		frags = append(frags, it.dot(r))
	}
	return strings.Join(frags, "\n")
}

// DOT renders the graph as a complete digraph document. Cluster numbering
// starts at zero on every call, so repeated calls return identical text.
func (g *Graph) DOT(opts Options) string {
	r := &renderer{lookup: g, opts: opts}

	var b strings.Builder
	b.WriteString("digraph G {\n")
	for _, h := range dotHeaders {
		b.WriteString(h)
		b.WriteString("\n")
	}
	if body := g.fragments(r); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// WriteDOT writes the DOT document to w.
func (g *Graph) WriteDOT(w io.Writer, opts Options) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(g.DOT(opts)); err != nil {
		return err
	}
	return bw.Flush()
}

// escapeLabel makes s safe inside a double-quoted DOT string.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r\n", lineBreak)
	return strings.ReplaceAll(s, "\n", lineBreak)
}

var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true,
	"digraph": true, "subgraph": true, "strict": true,
}

// dotID quotes id unless it is a plain DOT identifier.
func dotID(id string) string {
	if isBareID(id) {
		return id
	}
	return `"` + escapeLabel(id) + `"`
}

func isBareID(s string) bool {
	if s == "" || dotKeywords[strings.ToLower(s)] {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
