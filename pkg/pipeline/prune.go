package pipeline

import (
	"github.com/matzehuels/bpmndot/pkg/bpmn"
)

// ErrorHandlingIDs returns the ids that make up the error-handling region
// of g: every boundary event, every top-level subprocess named name, and the
// targets of the edges leaving those subprocesses. Only one hop downstream
// is followed.
func ErrorHandlingIDs(g *bpmn.Graph, name string) []string {
	var ids []string
	for _, n := range g.ChildNodesWithTag(bpmn.BPMNTag("boundaryEvent")) {
		ids = append(ids, n.ID())
	}

	var handlers []string
	for _, sub := range g.Subprocesses() {
		if sub.Name() == name {
			handlers = append(handlers, sub.ID())
		}
	}
	ids = append(ids, handlers...)

	for _, id := range handlers {
		ids = append(ids, g.DownstreamNodes(id)...)
	}
	return ids
}

// PruneErrorHandling returns a copy of g without the error-handling region
// and without any item adjacent to it.
func PruneErrorHandling(g *bpmn.Graph, name string) *bpmn.Graph {
	return g.RemoveAdjacent(ErrorHandlingIDs(g, name))
}
