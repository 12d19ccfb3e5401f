package bpmn

import (
	"regexp"

	"github.com/beevik/etree"

	"github.com/matzehuels/bpmndot/pkg/errors"
)

// Namespaces understood by the element handlers.
const (
	// ModelNamespace is the BPMN 2.0 model namespace every handled element lives in.
	ModelNamespace = "http://www.omg.org/spec/BPMN/20100524/MODEL"

	// ActivitiNamespace carries the vendor extension attributes (activiti:class,
	// activiti:taskListener) used by service and user tasks.
	ActivitiNamespace = "http://activiti.org/bpmn"
)

var tagPattern = regexp.MustCompile(`^\{(.*)\}(.*)$`)

// Tag is a namespaced XML element name. Two tags are equal when both the
// namespace and the local name match, so Tag values can be compared with ==.
type Tag struct {
	Namespace string
	Local     string
}

// BPMNTag returns the tag for local in the BPMN model namespace.
func BPMNTag(local string) Tag {
	return Tag{Namespace: ModelNamespace, Local: local}
}

// ParseTag splits a tag string of the form {namespace}local.
// It returns an INVALID_TAG error when raw does not have that shape.
func ParseTag(raw string) (Tag, error) {
	m := tagPattern.FindStringSubmatch(raw)
	if m == nil {
		return Tag{}, errors.New(errors.ErrCodeInvalidTag, "tag %q is not of the form {namespace}local", raw)
	}
	return Tag{Namespace: m[1], Local: m[2]}, nil
}

// TagOf returns the resolved tag of an element. The element's prefix, or
// the default namespace when it has none, is resolved against the xmlns
// declarations in scope.
func TagOf(e *etree.Element) Tag {
	return Tag{Namespace: e.NamespaceURI(), Local: e.Tag}
}

// String reconstructs the {namespace}local form accepted by ParseTag.
func (t Tag) String() string {
	return "{" + t.Namespace + "}" + t.Local
}

// IsBPMN reports whether t is local in the BPMN model namespace.
func (t Tag) IsBPMN(local string) bool {
	return t == BPMNTag(local)
}
