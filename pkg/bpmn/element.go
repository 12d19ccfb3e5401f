package bpmn

import (
	"strings"

	"github.com/beevik/etree"
)

// attr returns the value of the unqualified attribute key.
func attr(e *etree.Element, key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// attrOr returns the unqualified attribute key or dflt when it is absent.
func attrOr(e *etree.Element, key, dflt string) string {
	if v, ok := attr(e, key); ok {
		return v
	}
	return dflt
}

// nsAttr returns the value of the attribute key qualified with namespace ns.
func nsAttr(e *etree.Element, ns, key string) (string, bool) {
	for i := range e.Attr {
		a := &e.Attr[i]
		if a.Space == "" || a.Key != key {
			continue
		}
		if a.NamespaceURI() == ns {
			return a.Value, true
		}
	}
	return "", false
}

// hasAttrs reports whether every key is present with a non-empty value.
func hasAttrs(e *etree.Element, keys ...string) bool {
	for _, k := range keys {
		if v, _ := attr(e, k); v == "" {
			return false
		}
	}
	return true
}

// firstChild returns the first direct child element with the given tag.
func firstChild(e *etree.Element, tag Tag) *etree.Element {
	for _, child := range e.ChildElements() {
		if TagOf(child) == tag {
			return child
		}
	}
	return nil
}

// descendants returns every element below e with the given tag, in document order.
func descendants(e *etree.Element, tag Tag) []*etree.Element {
	var out []*etree.Element
	for _, child := range e.ChildElements() {
		if TagOf(child) == tag {
			out = append(out, child)
		}
		out = append(out, descendants(child, tag)...)
	}
	return out
}

// firstDescendant returns the first element below e with the given tag.
func firstDescendant(e *etree.Element, tag Tag) *etree.Element {
	for _, child := range e.ChildElements() {
		if TagOf(child) == tag {
			return child
		}
		if found := firstDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// text returns the trimmed character data of e.
func text(e *etree.Element) string {
	return strings.TrimSpace(e.Text())
}
