// Package pkg provides the libraries behind bpmndot, a converter from BPMN
// 2.0 process definitions to Graphviz diagrams.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Domain: [bpmn] reads a process into a graph of nodes, edges and
//     subprocesses and serializes it as DOT
//  2. Orchestration: [pipeline] runs load → prune → render and [render]
//     turns DOT into SVG, PNG or PDF
//  3. Infrastructure: [cache], [config], [io], [errors], [observability]
//     and [buildinfo]
//
// # Architecture
//
// The typical data flow through bpmndot:
//
//	BPMN XML
//	    ↓
//	[bpmn] package (element dispatch → ordered graph)
//	    ↓
//	[pipeline] package (drop the error-handling region)
//	    ↓
//	[bpmn] Graph.DOT (depth-first serialization)
//	    ↓
//	[render] package (Graphviz layout, optional)
//	    ↓
//	DOT/SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	g, err := bpmn.Load("order.bpmn")
//	if err != nil {
//	    return err
//	}
//	g = pipeline.PruneErrorHandling(g, pipeline.DefaultExceptionSubprocessName)
//	dot := g.DOT(bpmn.Options{ShowFlows: true})
//
// Or run the whole conversion, with caching of rendered artifacts:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "order.bpmn",
//	    Formats: []string{"dot", "svg"},
//	})
//
// # Main Packages
//
// [bpmn] - Tags, the element dispatch table, the Node/Edge/Subprocess item
// family, graph queries and DOT output.
//
// [pipeline] - Options, format validation, output path derivation, the
// error-handling prune and the cached [pipeline.Runner].
//
// [render] - Graphviz layout through go-graphviz and SVG conversion to PDF
// and PNG.
//
// [cache] - Artifact cache with file, redis and null backends.
//
// [config] - TOML and YAML config files.
//
// [io] - JSON export and import of a loaded graph.
//
// # Testing
//
// Run tests:
//
//	go test ./...          # All tests
//	go test -short ./...   # Skip tests that need Graphviz tooling
//	go test -run Example   # Examples only
//
// [bpmn]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/bpmn
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bpmndot/pkg/buildinfo
package pkg
