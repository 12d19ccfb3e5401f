package bpmn

import (
	"fmt"
	"strings"
)

// NoName is the label used for elements without a name attribute.
const NoName = "<no_name>"

// Default fill colours per element kind.
const (
	ColourStartEvent             = "#d1ffd1"
	ColourEndEvent               = "#ffd1d1"
	ColourServiceTask            = "#d1f4ff"
	ColourUserTask               = "#e8d1ff"
	ColourCallActivity           = "#ffffd1"
	ColourIntermediateCatchEvent = "#ffd1f4"
	ColourSubprocess             = "#f2f2f2"
)

// NodeKind selects the rendering behaviour of a [Node].
type NodeKind int

const (
	// KindPlain is any element with an id and no dedicated handler, plus
	// start and end events.
	KindPlain NodeKind = iota
	KindGateway
	KindBoundaryEvent
	KindServiceTask
	KindUserTask
	KindCallActivity
	KindIntermediateCatchEvent
)

var kindNames = map[NodeKind]string{
	KindPlain:                  "node",
	KindGateway:                "gateway",
	KindBoundaryEvent:          "boundaryEvent",
	KindServiceTask:            "serviceTask",
	KindUserTask:               "userTask",
	KindCallActivity:           "callActivity",
	KindIntermediateCatchEvent: "intermediateCatchEvent",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

var gatewayGlyphs = map[string]string{
	"exclusiveGateway": "X",
	"parallelGateway":  "+",
}

// Extra is an additional key/value line shown under a node's name.
type Extra struct {
	Key   string
	Value string
}

// TaskListener is an activiti:taskListener declared on a user task.
type TaskListener struct {
	Event      string `json:"event"`
	ClassName  string `json:"class,omitempty"`
	Expression string `json:"expression,omitempty"`
}

// Node is a single vertex of the diagram. All node variants share this type
// and differ by Kind plus the variant fields (extras, listeners, attachment).
type Node struct {
	id        string
	tag       Tag
	name      string
	showID    bool
	colour    string
	extras    []Extra
	kind      NodeKind
	attached  string
	listeners []TaskListener
}

func newNode(kind NodeKind, id string, tag Tag, name string) *Node {
	if name == "" {
		name = NoName
	}
	return &Node{id: id, tag: tag, name: name, showID: true, kind: kind}
}

// NewNode creates a plain box node showing its name and id.
func NewNode(id string, tag Tag, name string) *Node {
	return newNode(KindPlain, id, tag, name)
}

// NewGateway creates a diamond node labelled with the gateway glyph.
func NewGateway(id string, tag Tag, name string) *Node {
	return newNode(KindGateway, id, tag, name)
}

// NewBoundaryEvent creates an event decorating the activity attachedTo.
func NewBoundaryEvent(id string, tag Tag, name, attachedTo string) *Node {
	n := newNode(KindBoundaryEvent, id, tag, name)
	n.showID = false
	n.attached = attachedTo
	return n
}

// NewServiceTask creates a service task implemented by the Java class className.
func NewServiceTask(id string, tag Tag, name, className string) *Node {
	n := newNode(KindServiceTask, id, tag, name)
	n.colour = ColourServiceTask
	n.extras = []Extra{{Key: "class", Value: className}}
	return n
}

// NewUserTask creates a user task with its task listeners.
func NewUserTask(id string, tag Tag, name string, listeners []TaskListener) *Node {
	n := newNode(KindUserTask, id, tag, name)
	n.colour = ColourUserTask
	n.listeners = listeners
	return n
}

// NewCallActivity creates a call activity invoking the process calledElement.
func NewCallActivity(id string, tag Tag, name, calledElement string) *Node {
	n := newNode(KindCallActivity, id, tag, name)
	n.colour = ColourCallActivity
	n.extras = []Extra{{Key: "calling", Value: calledElement}}
	return n
}

// NewIntermediateCatchEvent creates a catch event; extras hold the message
// reference and timer duration when present.
func NewIntermediateCatchEvent(id string, tag Tag, name string, extras []Extra) *Node {
	n := newNode(KindIntermediateCatchEvent, id, tag, name)
	n.colour = ColourIntermediateCatchEvent
	n.extras = extras
	return n
}

func (n *Node) ID() string                { return n.id }
func (n *Node) Tag() Tag                  { return n.tag }
func (n *Node) Name() string              { return n.name }
func (n *Node) Kind() NodeKind            { return n.kind }
func (n *Node) Colour() string            { return n.colour }
func (n *Node) AttachedTo() string        { return n.attached }
func (n *Node) Listeners() []TaskListener { return n.listeners }
func (n *Node) StartNodeID() string       { return n.id }
func (n *Node) EndNodeID() string         { return n.id }
func (n *Node) Adjacent() []string        { return []string{n.id} }
func (n *Node) SetColour(colour string)   { n.colour = colour }
func (n *Node) Extras() []Extra           { return n.extras }
func (n *Node) String() string            { return n.kind.String() + ":" + n.id }

// Extra returns the value of the named extra.
func (n *Node) Extra(key string) (string, bool) {
	for _, e := range n.extras {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Shape returns the Graphviz shape for the node.
func (n *Node) Shape() string {
	switch n.kind {
	case KindGateway:
		return "diamond"
	case KindBoundaryEvent:
		return "circle"
	case KindUserTask:
		return "ellipse"
	default:
		return "box"
	}
}

// Label returns the label text with DOT line breaks.
func (n *Node) Label(opts Options) string {
	switch n.kind {
	case KindGateway:
		return gatewayGlyphs[n.tag.Local]
	case KindBoundaryEvent:
		return "~"
	case KindServiceTask:
		label := n.baseLabel()
		if class, _ := n.Extra("class"); class != "" {
			label += lineBreak + "class: " + className(class, opts)
		}
		return label
	case KindUserTask:
		label := n.baseLabel()
		if opts.ShowTaskListeners {
			for _, l := range n.listeners {
				label += lineBreak + escapeLabel(l.Event) + ": " + l.label(opts)
			}
		}
		return label
	default:
		label := n.baseLabel()
		for _, e := range n.extras {
			label += lineBreak + e.Key + ": " + escapeLabel(e.Value)
		}
		return label
	}
}

func (n *Node) baseLabel() string {
	name := escapeLabel(n.name)
	if !n.showID {
		return name
	}
	return name + lineBreak + "id: " + escapeLabel(n.id)
}

func (n *Node) dot(r *renderer) string {
	switch n.kind {
	case KindGateway, KindBoundaryEvent:
		frag := fmt.Sprintf(`%s [shape="%s", label="%s"]`, dotID(n.id), n.Shape(), n.Label(r.opts))
		if n.kind == KindBoundaryEvent {
			frag += "\n" + NewEdge("boundary", n.attached, n.id, "", "").dot(r)
		}
		return frag
	}

	colour := ""
	if n.colour != "" {
		colour = fmt.Sprintf(`, fillcolor="%s", style="filled"`, n.colour)
	}
	return fmt.Sprintf(`%s [label="%s", shape="%s"%s]`, dotID(n.id), n.Label(r.opts), n.Shape(), colour)
}

// label is the listener class name, or the expression for expression listeners.
func (l TaskListener) label(opts Options) string {
	if l.ClassName != "" {
		return className(l.ClassName, opts)
	}
	return escapeLabel(l.Expression)
}

// className returns the last dot segment of a Java class name unless package
// names were requested.
func className(name string, opts Options) string {
	if !opts.ShowPackageNames {
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
	}
	return escapeLabel(name)
}
