package bpmn

import (
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/matzehuels/bpmndot/pkg/errors"
)

// handler builds an item from an element. ok is false when the handler is
// not suitable for the element, in which case the generic handlers are tried.
// A non-nil error aborts the load.
type handler func(e *etree.Element) (item Item, ok bool, err error)

// handlers maps a BPMN local tag name to its dedicated handler. The map is
// filled in init because handleSubProcess recurses through buildGraph.
var handlers map[string]handler

// fallbacks are tried in order for elements without a dedicated handler or
// whose dedicated handler was unsuitable.
var fallbacks = []handler{handleEdge, handleNode}

func init() {
	handlers = map[string]handler{
		"subProcess":             handleSubProcess,
		"boundaryEvent":          handleBoundaryEvent,
		"serviceTask":            handleServiceTask,
		"userTask":               handleUserTask,
		"callActivity":           handleCallActivity,
		"intermediateCatchEvent": handleIntermediateCatchEvent,
		"exclusiveGateway":       handleGateway,
		"parallelGateway":        handleGateway,
		"startEvent":             colouredNode(ColourStartEvent),
		"endEvent":               colouredNode(ColourEndEvent),
	}
}

// Load reads the BPMN file at path. See [Parse].
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a BPMN document from r. See [Parse].
func Read(r io.Reader) (*Graph, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedXML, err, "parse BPMN document")
	}
	return Parse(doc)
}

// Parse builds the graph of the single BPMN process element in doc. The
// process may appear at any depth; zero or several process elements are an
// INVALID_STRUCTURE error.
func Parse(doc *etree.Document) (*Graph, error) {
	procs := descendants(&doc.Element, BPMNTag("process"))
	if len(procs) != 1 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "%d process elements found - 1 expected", len(procs))
	}
	return buildGraph(procs[0])
}

// buildGraph dispatches every direct child of parent and collects the
// resulting items. Elements no handler accepts are skipped.
func buildGraph(parent *etree.Element) (*Graph, error) {
	g := &Graph{}
	for _, child := range parent.ChildElements() {
		item, err := dispatch(child)
		if err != nil {
			return nil, err
		}
		g.Add(item)
	}
	return g, nil
}

func dispatch(e *etree.Element) (Item, error) {
	if h, ok := handlers[e.Tag]; ok {
		item, ok, err := h(e)
		if err != nil || ok {
			return item, err
		}
	}
	for _, h := range fallbacks {
		item, ok, err := h(e)
		if err != nil || ok {
			return item, err
		}
	}
	return nil, nil
}

// isBPMN reports whether e is the BPMN element local and carries all keys.
func isBPMN(e *etree.Element, local string, keys ...string) bool {
	return TagOf(e).IsBPMN(local) && hasAttrs(e, keys...)
}

func handleSubProcess(e *etree.Element) (Item, bool, error) {
	if !isBPMN(e, "subProcess", "id") {
		return nil, false, nil
	}
	children, err := buildGraph(e)
	if err != nil {
		return nil, false, err
	}
	id, _ := attr(e, "id")
	sub, err := NewSubprocess(id, attrOr(e, "name", ""), children)
	if err != nil {
		return nil, false, err
	}
	return sub, true, nil
}

func handleBoundaryEvent(e *etree.Element) (Item, bool, error) {
	if !isBPMN(e, "boundaryEvent", "id", "attachedToRef") {
		return nil, false, nil
	}
	id, _ := attr(e, "id")
	attached, _ := attr(e, "attachedToRef")
	return NewBoundaryEvent(id, TagOf(e), attrOr(e, "name", ""), attached), true, nil
}

func handleServiceTask(e *etree.Element) (Item, bool, error) {
	if !isBPMN(e, "serviceTask", "id") {
		return nil, false, nil
	}
	id, _ := attr(e, "id")
	class, _ := nsAttr(e, ActivitiNamespace, "class")
	return NewServiceTask(id, TagOf(e), attrOr(e, "name", ""), class), true, nil
}

func handleUserTask(e *etree.Element) (Item, bool, error) {
	if !isBPMN(e, "userTask", "id") {
		return nil, false, nil
	}
	var listeners []TaskListener
	for _, l := range descendants(e, Tag{Namespace: ActivitiNamespace, Local: "taskListener"}) {
		listeners = append(listeners, TaskListener{
			Event:      attrOr(l, "event", ""),
			ClassName:  attrOr(l, "class", ""),
			Expression: attrOr(l, "expression", ""),
		})
	}
	id, _ := attr(e, "id")
	return NewUserTask(id, TagOf(e), attrOr(e, "name", ""), listeners), true, nil
}

func handleCallActivity(e *etree.Element) (Item, bool, error) {
	if !isBPMN(e, "callActivity", "id", "calledElement") {
		return nil, false, nil
	}
	id, _ := attr(e, "id")
	called, _ := attr(e, "calledElement")
	return NewCallActivity(id, TagOf(e), attrOr(e, "name", ""), called), true, nil
}

func handleIntermediateCatchEvent(e *etree.Element) (Item, bool, error) {
	if !isBPMN(e, "intermediateCatchEvent", "id") {
		return nil, false, nil
	}
	var extras []Extra
	if def := firstDescendant(e, BPMNTag("messageEventDefinition")); def != nil {
		extras = append(extras, Extra{Key: "messageRef", Value: attrOr(def, "messageRef", "")})
	}
	if d := firstDescendant(e, BPMNTag("timeDuration")); d != nil {
		extras = append(extras, Extra{Key: "duration", Value: text(d)})
	}
	id, _ := attr(e, "id")
	return NewIntermediateCatchEvent(id, TagOf(e), attrOr(e, "name", ""), extras), true, nil
}

func handleGateway(e *etree.Element) (Item, bool, error) {
	tag := TagOf(e)
	if _, known := gatewayGlyphs[tag.Local]; !known || tag.Namespace != ModelNamespace || !hasAttrs(e, "id") {
		return nil, false, nil
	}
	id, _ := attr(e, "id")
	return NewGateway(id, tag, attrOr(e, "name", "")), true, nil
}

// colouredNode returns a handler producing plain nodes filled with colour.
func colouredNode(colour string) handler {
	return func(e *etree.Element) (Item, bool, error) {
		if TagOf(e).Namespace != ModelNamespace {
			return nil, false, nil
		}
		item, ok, err := handleNode(e)
		if !ok || err != nil {
			return item, ok, err
		}
		item.(*Node).SetColour(colour)
		return item, true, nil
	}
}

func handleEdge(e *etree.Element) (Item, bool, error) {
	if !hasAttrs(e, "id", "sourceRef", "targetRef") {
		return nil, false, nil
	}
	var condition string
	if c := firstChild(e, BPMNTag("conditionExpression")); c != nil {
		condition = TidyCondition(c.Text())
	}
	id, _ := attr(e, "id")
	source, _ := attr(e, "sourceRef")
	target, _ := attr(e, "targetRef")
	return NewEdge(id, source, target, attrOr(e, "name", ""), condition), true, nil
}

func handleNode(e *etree.Element) (Item, bool, error) {
	if !hasAttrs(e, "id") {
		return nil, false, nil
	}
	id, _ := attr(e, "id")
	return NewNode(id, TagOf(e), attrOr(e, "name", "")), true, nil
}
