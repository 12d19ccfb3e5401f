package bpmn

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `digraph G {
fontname = "sans"
node[shape = "box", fontname = "sans"]
edge[fontname = "sans"]
`

func TestDOTSimple(t *testing.T) {
	g, err := Load("testdata/simple.bpmn")
	require.NoError(t, err)

	want := header +
		`S [label="Start\nid: S", shape="box", fillcolor="#d1ffd1", style="filled"]
T [label="Do work\nid: T\nclass: Foo", shape="box", fillcolor="#d1f4ff", style="filled"]
E [label="End\nid: E", shape="box", fillcolor="#ffd1d1", style="filled"]
S -> T
T -> E
}
`
	if diff := cmp.Diff(want, g.DOT(Options{})); diff != "" {
		t.Errorf("DOT() mismatch (-want +got):\n%s", diff)
	}

	full := g.DOT(Options{ShowPackageNames: true, ShowFlows: true})
	assert.Contains(t, full, `class: com.acme.Foo`)
	assert.Contains(t, full, `S -> T [label="f1"]`)
}

func TestDOTFull(t *testing.T) {
	g, err := Load("testdata/full.bpmn")
	require.NoError(t, err)

	out := g.DOT(Options{})
	for _, frag := range []string{
		`choice [shape="diamond", label="X"]`,
		`fork [shape="diamond", label="+"]`,
		`approve [label="Approve order\nid: approve", shape="ellipse", fillcolor="#e8d1ff", style="filled"]`,
		`invoice [label="Invoice\nid: invoice\ncalling: invoicing", shape="box", fillcolor="#ffffd1", style="filled"]`,
		`orphan [label="No target\nid: orphan", shape="box"]`,
		`wait [label="Wait for payment\nid: wait\nmessageRef: paid", shape="box", fillcolor="#ffd1f4", style="filled"]`,
		`timer [label="Cool down\nid: timer\nduration: PT5M", shape="box", fillcolor="#ffd1f4", style="filled"]`,
		`choice -> fork [label="yes\napproved ==\n true &&\n amount > 0"]`,
		"subgraph cluster0 {\nlabel=\"Pack\"\nstyle=\"filled\"\n\nfillcolor=\"#f2f2f2\"\n",
		`wrap [label="Wrap\nid: wrap", shape="box"]`,
		"wrap -> packEnd\n}\n",
		`fork -> packStart`,
		`packEnd -> wait`,
	} {
		assert.Contains(t, out, frag)
	}
	assert.NotContains(t, out, "create:")

	listeners := g.DOT(Options{ShowTaskListeners: true})
	assert.Contains(t, listeners, `approve [label="Approve order\nid: approve\ncreate: AssignReviewer\ncomplete: ${audit.record(task)}"`)

	pkgs := g.DOT(Options{ShowTaskListeners: true, ShowPackageNames: true})
	assert.Contains(t, pkgs, `create: com.acme.listeners.AssignReviewer`)
}

func TestDOTDeterministic(t *testing.T) {
	inner := func(prefix string) *Graph {
		return NewGraph(
			NewNode(prefix+"s", BPMNTag("startEvent"), ""),
			NewNode(prefix+"e", BPMNTag("endEvent"), ""),
		)
	}
	first, err := NewSubprocess("one", "One", inner("a"))
	require.NoError(t, err)
	second, err := NewSubprocess("two", "Two", inner("b"))
	require.NoError(t, err)
	g := NewGraph(first, second)

	out := g.DOT(Options{})
	assert.Equal(t, out, g.DOT(Options{}))
	assert.Less(t, strings.Index(out, "cluster0"), strings.Index(out, "cluster1"))
	assert.NotContains(t, out, "cluster2")

	var buf bytes.Buffer
	require.NoError(t, g.WriteDOT(&buf, Options{}))
	assert.Equal(t, out, buf.String())
}

func TestBoundaryEventDOT(t *testing.T) {
	g := NewGraph(
		NewServiceTask("A", BPMNTag("serviceTask"), "Charge", ""),
		NewBoundaryEvent("BE", BPMNTag("boundaryEvent"), "Declined", "A"),
	)

	out := g.DOT(Options{})
	assert.Contains(t, out, "A [label=\"Charge\\nid: A\", shape=\"box\", fillcolor=\"#d1f4ff\", style=\"filled\"]\n")
	assert.Contains(t, out, "BE [shape=\"circle\", label=\"~\"]\nA -> BE\n")

	flows := g.DOT(Options{ShowFlows: true})
	assert.Contains(t, flows, `A -> BE [label="boundary"]`)
}

func TestEdgeLabel(t *testing.T) {
	tests := []struct {
		name string
		edge *Edge
		opts Options
		want string
	}{
		{"bare", NewEdge("f", "a", "b", "", ""), Options{}, ""},
		{"name", NewEdge("f", "a", "b", "go", ""), Options{}, "go"},
		{"flow id", NewEdge("f", "a", "b", "", ""), Options{ShowFlows: true}, "f"},
		{"all", NewEdge("f", "a", "b", "go", "x"), Options{ShowFlows: true}, `go\nx\nf`},
		{"quoted name", NewEdge("f", "a", "b", `say "hi"`, ""), Options{}, `say \"hi\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Label(tt.opts); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTidyCondition(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`${a=="x"&&b}`, `a==\n\"x\"&&\nb`},
		{`${x || y}`, `x ||\n y`},
		{"  ${done}\n", `done`},
		{`plain`, `plain`},
		{`${a\}`, `a\\`},
		{`${path == "C:\tmp"}`, `path ==\n \"C:\\tmp\"`},
	}

	for _, tt := range tests {
		if got := TidyCondition(tt.in); got != tt.want {
			t.Errorf("TidyCondition(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDotID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Task_1", "Task_1"},
		{"_x", "_x"},
		{"1abc", `"1abc"`},
		{"sid-12-ab", `"sid-12-ab"`},
		{"node", `"node"`},
		{"Subgraph", `"Subgraph"`},
		{`a"b`, `"a\"b"`},
	}

	for _, tt := range tests {
		if got := dotID(tt.in); got != tt.want {
			t.Errorf("dotID(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func ExampleGraph_DOT() {
	g := NewGraph(
		NewNode("start", BPMNTag("startEvent"), "Begin"),
		NewGateway("gw", BPMNTag("exclusiveGateway"), ""),
		NewEdge("f1", "start", "gw", "", ""),
	)
	fmt.Print(g.DOT(Options{}))
	// Output:
	// digraph G {
	// fontname = "sans"
	// node[shape = "box", fontname = "sans"]
	// edge[fontname = "sans"]
	// start [label="Begin\nid: start", shape="box"]
	// gw [shape="diamond", label="X"]
	// start -> gw
	// }
}
