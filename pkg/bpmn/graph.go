package bpmn

import (
	"github.com/tidwall/btree"
)

// Item is anything stored in a [Graph]: a [*Node], an [*Edge] or a
// [*Subprocess].
type Item interface {
	// ID is unique within the containing graph.
	ID() string
	// Adjacent lists the ids the item structurally touches. RemoveAdjacent
	// drops the item when any of them is removed.
	Adjacent() []string

	dot(r *renderer) string
}

// Endpoint is an item edges can attach to. Nodes are their own endpoints;
// subprocesses delegate to their inner start and end events.
type Endpoint interface {
	StartNodeID() string
	EndNodeID() string
}

// Graph is an insertion-ordered set of items keyed by id.
//
// Adding an item whose id is already present replaces the stored item but
// keeps its original position.
type Graph struct {
	order []string
	index btree.Map[string, Item]
}

// NewGraph returns a graph holding items in the given order.
func NewGraph(items ...Item) *Graph {
	g := &Graph{}
	for _, it := range items {
		g.Add(it)
	}
	return g
}

// Add stores item under its id. A nil item is ignored.
func (g *Graph) Add(item Item) {
	if item == nil {
		return
	}
	if _, replaced := g.index.Set(item.ID(), item); !replaced {
		g.order = append(g.order, item.ID())
	}
}

// Item returns the item stored under id.
func (g *Graph) Item(id string) (Item, bool) {
	return g.index.Get(id)
}

// Len returns the number of stored items.
func (g *Graph) Len() int { return len(g.order) }

// IDs returns the item ids in insertion order.
func (g *Graph) IDs() []string {
	return append([]string(nil), g.order...)
}

// Items returns the items in insertion order.
func (g *Graph) Items() []Item {
	items := make([]Item, 0, len(g.order))
	for _, id := range g.order {
		it, _ := g.index.Get(id)
		items = append(items, it)
	}
	return items
}

// ChildNodes returns the node items in insertion order. Edges and
// subprocesses are not nodes.
func (g *Graph) ChildNodes() []*Node {
	var nodes []*Node
	for _, it := range g.Items() {
		if n, ok := it.(*Node); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// ChildNodesWithTag returns the child nodes whose tag equals tag.
func (g *Graph) ChildNodesWithTag(tag Tag) []*Node {
	var nodes []*Node
	for _, n := range g.ChildNodes() {
		if n.Tag() == tag {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// FirstNode returns the first child node.
func (g *Graph) FirstNode() (*Node, bool) {
	nodes := g.ChildNodes()
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// LastNode returns the last child node.
func (g *Graph) LastNode() (*Node, bool) {
	nodes := g.ChildNodes()
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[len(nodes)-1], true
}

// Edges returns the edges leaving source and entering target. An empty
// source or target matches any endpoint.
func (g *Graph) Edges(source, target string) []*Edge {
	var edges []*Edge
	for _, it := range g.Items() {
		e, ok := it.(*Edge)
		if !ok {
			continue
		}
		if source != "" && e.Source() != source {
			continue
		}
		if target != "" && e.Target() != target {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// DownstreamNodes returns the target ids of the edges leaving id.
func (g *Graph) DownstreamNodes(id string) []string {
	var ids []string
	for _, e := range g.Edges(id, "") {
		ids = append(ids, e.Target())
	}
	return ids
}

// Subprocesses returns the top-level subprocesses in insertion order.
func (g *Graph) Subprocesses() []*Subprocess {
	var subs []*Subprocess
	for _, it := range g.Items() {
		if s, ok := it.(*Subprocess); ok {
			subs = append(subs, s)
		}
	}
	return subs
}

// RemoveAdjacent returns a new graph without the items whose Adjacent set
// intersects ids. Items are dropped whole and the survivors keep their
// relative order. The receiver is not modified.
func (g *Graph) RemoveAdjacent(ids []string) *Graph {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	out := &Graph{}
	for _, it := range g.Items() {
		if !touches(it, drop) {
			out.Add(it)
		}
	}
	return out
}

func touches(it Item, ids map[string]struct{}) bool {
	for _, id := range it.Adjacent() {
		if _, ok := ids[id]; ok {
			return true
		}
	}
	return false
}
