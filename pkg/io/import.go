package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/bpmndot/pkg/bpmn"
	"github.com/matzehuels/bpmndot/pkg/errors"
)

// ReadJSON decodes a graph encoded by [MarshalJSON].
//
// ReadJSON returns an error if the JSON is malformed, an item has an unknown
// type or node kind, a tag is not in {namespace}local form, or a subprocess
// lacks its start or end event.
func ReadJSON(r io.Reader) (*bpmn.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph JSON")
	}
	return decodeItems(doc.Items)
}

// ImportJSON reads a graph from a JSON file at path.
func ImportJSON(path string) (*bpmn.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func decodeItems(items []item) (*bpmn.Graph, error) {
	g := bpmn.NewGraph()
	for _, it := range items {
		switch it.Type {
		case typeNode:
			n, err := decodeNode(it)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", it.ID, err)
			}
			g.Add(n)
		case typeEdge:
			g.Add(bpmn.NewEdge(it.ID, it.Source, it.Target, it.Name, it.Condition))
		case typeSubprocess:
			children, err := decodeItems(it.Items)
			if err != nil {
				return nil, fmt.Errorf("subprocess %s: %w", it.ID, err)
			}
			sub, err := bpmn.NewSubprocess(it.ID, it.Name, children)
			if err != nil {
				return nil, err
			}
			g.Add(sub)
		default:
			return nil, fmt.Errorf("item %s: unknown type %q", it.ID, it.Type)
		}
	}
	return g, nil
}

func decodeNode(it item) (*bpmn.Node, error) {
	tag, err := bpmn.ParseTag(it.Tag)
	if err != nil {
		return nil, err
	}
	extras := make([]bpmn.Extra, 0, len(it.Extras))
	for _, e := range it.Extras {
		extras = append(extras, bpmn.Extra{Key: e.Key, Value: e.Value})
	}
	extraValue := func(key string) string {
		for _, e := range extras {
			if e.Key == key {
				return e.Value
			}
		}
		return ""
	}

	var n *bpmn.Node
	switch it.Kind {
	case bpmn.KindPlain.String():
		n = bpmn.NewNode(it.ID, tag, it.Name)
	case bpmn.KindGateway.String():
		n = bpmn.NewGateway(it.ID, tag, it.Name)
	case bpmn.KindBoundaryEvent.String():
		n = bpmn.NewBoundaryEvent(it.ID, tag, it.Name, it.AttachedTo)
	case bpmn.KindServiceTask.String():
		n = bpmn.NewServiceTask(it.ID, tag, it.Name, extraValue("class"))
	case bpmn.KindUserTask.String():
		n = bpmn.NewUserTask(it.ID, tag, it.Name, it.Listeners)
	case bpmn.KindCallActivity.String():
		n = bpmn.NewCallActivity(it.ID, tag, it.Name, extraValue("calling"))
	case bpmn.KindIntermediateCatchEvent.String():
		n = bpmn.NewIntermediateCatchEvent(it.ID, tag, it.Name, extras)
	default:
		return nil, fmt.Errorf("unknown kind %q", it.Kind)
	}
	n.SetColour(it.Colour)
	return n, nil
}
