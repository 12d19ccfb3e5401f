// Package bpmn reads BPMN 2.0 process definitions and renders them as
// Graphviz DOT digraphs.
//
// # Model
//
// A [Graph] holds the items of one process in document order: nodes
// ([*Node], one type for every node variant selected by [NodeKind]),
// sequence flows ([*Edge]) and embedded subprocesses ([*Subprocess]), which
// carry a nested Graph of their own.
//
// # Loading
//
// [Load] and [Read] locate the single process element of a document and
// dispatch each child element by its local tag name. Elements with a
// dedicated handler (tasks, events, gateways, subprocesses) become the
// matching node variant; anything else with id, sourceRef and targetRef
// becomes an edge, anything else with an id a plain node, and the remaining
// elements are skipped.
//
//	g, err := bpmn.Load("order.bpmn")
//	if err != nil {
//	    return err
//	}
//	fmt.Print(g.DOT(bpmn.Options{ShowFlows: true}))
//
// # Rendering
//
// [Graph.DOT] writes a fixed header followed by one fragment per item.
// Subprocesses become filled clusters numbered in rendering order. Edges
// whose endpoint is a top-level subprocess are redirected to its inner end
// or start event; subprocesses nested inside other subprocesses are not
// resolved.
package bpmn
