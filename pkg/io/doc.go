// Package io encodes the BPMN graph model as JSON and decodes it again, so
// an exported graph can be fed back into the converter instead of the BPMN
// source.
//
// # JSON Format
//
// The document lists the process items in their original order. Every item
// carries a "type" of node, edge or subprocess:
//
//	{
//	  "items": [
//	    {"type": "node", "id": "S", "tag": "{http://www.omg.org/spec/BPMN/20100524/MODEL}startEvent",
//	     "kind": "node", "name": "Start", "colour": "#d1ffd1"},
//	    {"type": "node", "id": "T", "tag": "{...}serviceTask", "kind": "serviceTask",
//	     "name": "Do work", "extras": [{"key": "class", "value": "com.acme.Foo"}]},
//	    {"type": "edge", "id": "f1", "source": "S", "target": "T"},
//	    {"type": "subprocess", "id": "EH", "name": "Handle Exception",
//	     "start": "ehStart", "end": "ehEnd", "items": [...]}
//	  ]
//	}
//
// Tags use the {namespace}local notation of [bpmn.Tag.String].
//
// # Export
//
// [MarshalJSON] produces the document. It is what the pipeline emits for the
// "json" output format.
//
// # Import
//
// [ReadJSON] and [ImportJSON] rebuild the graph. Subprocesses are validated
// exactly as when loading BPMN, so an exported graph always imports again and
// renders the same DOT text. The pipeline imports any input file with a
// .json extension this way.
package io
