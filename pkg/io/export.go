package io

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/matzehuels/bpmndot/pkg/bpmn"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Item type discriminators.
const (
	typeNode       = "node"
	typeEdge       = "edge"
	typeSubprocess = "subprocess"
)

type document struct {
	Items []item `json:"items"`
}

type item struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// node
	Tag        string              `json:"tag,omitempty"`
	Kind       string              `json:"kind,omitempty"`
	Colour     string              `json:"colour,omitempty"`
	Extras     []extra             `json:"extras,omitempty"`
	AttachedTo string              `json:"attached_to,omitempty"`
	Listeners  []bpmn.TaskListener `json:"listeners,omitempty"`

	// edge
	Source    string `json:"source,omitempty"`
	Target    string `json:"target,omitempty"`
	Condition string `json:"condition,omitempty"`

	// subprocess
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Items []item `json:"items,omitempty"`
}

type extra struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MarshalJSON returns the indented JSON encoding of g.
func MarshalJSON(g *bpmn.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(document{Items: encodeItems(g)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

func encodeItems(g *bpmn.Graph) []item {
	items := make([]item, 0, g.Len())
	for _, it := range g.Items() {
		switch v := it.(type) {
		case *bpmn.Node:
			items = append(items, encodeNode(v))
		case *bpmn.Edge:
			items = append(items, item{
				Type:      typeEdge,
				ID:        v.ID(),
				Name:      v.Name(),
				Source:    v.Source(),
				Target:    v.Target(),
				Condition: v.Condition(),
			})
		case *bpmn.Subprocess:
			items = append(items, item{
				Type:  typeSubprocess,
				ID:    v.ID(),
				Name:  v.Name(),
				Start: v.StartNodeID(),
				End:   v.EndNodeID(),
				Items: encodeItems(v.Children()),
			})
		}
	}
	return items
}

func encodeNode(n *bpmn.Node) item {
	out := item{
		Type:       typeNode,
		ID:         n.ID(),
		Name:       n.Name(),
		Tag:        n.Tag().String(),
		Kind:       n.Kind().String(),
		Colour:     n.Colour(),
		AttachedTo: n.AttachedTo(),
		Listeners:  n.Listeners(),
	}
	for _, e := range n.Extras() {
		out.Extras = append(out.Extras, extra{Key: e.Key, Value: e.Value})
	}
	return out
}
