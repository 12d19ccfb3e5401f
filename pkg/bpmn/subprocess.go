package bpmn

import (
	"fmt"
	"strings"

	"github.com/matzehuels/bpmndot/pkg/errors"
)

// Subprocess is an embedded subProcess. It wraps its own graph and renders as
// a filled cluster; edges pointing at it resolve to its start and end events.
type Subprocess struct {
	id       string
	name     string
	children *Graph
	start    *Node
	end      *Node
}

// NewSubprocess wraps children. The children must contain a startEvent and an
// endEvent among their direct nodes, otherwise an INVALID_STRUCTURE error is
// returned.
func NewSubprocess(id, name string, children *Graph) (*Subprocess, error) {
	if name == "" {
		name = NoName
	}
	starts := children.ChildNodesWithTag(BPMNTag("startEvent"))
	if len(starts) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "subprocess %s has no startEvent", id)
	}
	ends := children.ChildNodesWithTag(BPMNTag("endEvent"))
	if len(ends) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "subprocess %s has no endEvent", id)
	}
	return &Subprocess{id: id, name: name, children: children, start: starts[0], end: ends[0]}, nil
}

func (s *Subprocess) ID() string          { return s.id }
func (s *Subprocess) Name() string        { return s.name }
func (s *Subprocess) Children() *Graph    { return s.children }
func (s *Subprocess) StartNodeID() string { return s.start.ID() }
func (s *Subprocess) EndNodeID() string   { return s.end.ID() }

// Adjacent is the subprocess id plus the ids of its direct children. Items
// nested deeper are not included.
func (s *Subprocess) Adjacent() []string {
	return append([]string{s.id}, s.children.IDs()...)
}

func (s *Subprocess) dot(r *renderer) string {
	lines := []string{
		fmt.Sprintf("subgraph cluster%d {", r.nextCluster()),
		fmt.Sprintf(`label="%s"`, escapeLabel(s.name)),
		`style="filled"` + "\n",
		fmt.Sprintf(`fillcolor="%s"`, ColourSubprocess),
		s.children.fragments(r),
		"}\n",
	}
	return strings.Join(lines, "\n")
}
