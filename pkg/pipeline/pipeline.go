// Package pipeline runs the BPMN to diagram conversion used by the CLI.
//
// # Architecture
//
// A conversion has three stages:
//
//  1. Load: parse the BPMN file into a [bpmn.Graph]
//  2. Prune: drop the error-handling region unless it was asked for
//  3. Render: serialize to DOT and produce every requested format
//
// Graphviz output (svg, png, pdf) is cached by DOT hash, so converting an
// unchanged process again skips the layout engine.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "order.bpmn",
//	    Formats: []string{"dot", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmndot/pkg/bpmn"
	"github.com/matzehuels/bpmndot/pkg/errors"
	"github.com/matzehuels/bpmndot/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultExceptionSubprocessName is the name of the subprocess treated as
// the error handler.
const DefaultExceptionSubprocessName = "Handle Exception"

// DefaultPNGScale is the default PNG scale factor.
const DefaultPNGScale = render.DefaultPNGScale

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// graphvizFormats are the formats that go through the layout engine.
var graphvizFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one conversion.
type Options struct {
	// Input is the BPMN file to convert.
	Input string `json:"input"`

	// Formats lists the outputs to produce, default dot.
	Formats []string `json:"formats,omitempty"`

	// Label options
	ShowFlows         bool `json:"show_flows,omitempty"`
	ShowPackageNames  bool `json:"show_package_names,omitempty"`
	ShowTaskListeners bool `json:"show_task_listeners,omitempty"`

	// ShowErrorHandling keeps boundary events and the exception subprocess.
	ShowErrorHandling       bool   `json:"show_error_handling,omitempty"`
	ExceptionSubprocessName string `json:"exception_subprocess_name,omitempty"`

	// PNGScale is the PNG resolution multiplier.
	PNGScale float64 `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the process after pruning.
	Graph *bpmn.Graph

	// DOT is the serialized diagram.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadedCount  int // Items in the process as loaded
	ItemCount    int // Items written to the diagram
	RemovedCount int // Items dropped by the error-handling prune
	LoadTime     time.Duration
	PruneTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for rendered artifacts.
type CacheInfo struct {
	RenderHit bool     // Whether every Graphviz artifact came from cache
	Hits      []string // Formats served from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates while keeping the order.
func ParseFormats(s string) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.ExceptionSubprocessName == "" {
		o.ExceptionSubprocessName = DefaultExceptionSubprocessName
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.PNGScale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DOTOptions returns the label options for [bpmn.Graph.DOT].
func (o *Options) DOTOptions() bpmn.Options {
	return bpmn.Options{
		ShowFlows:         o.ShowFlows,
		ShowPackageNames:  o.ShowPackageNames,
		ShowTaskListeners: o.ShowTaskListeners,
	}
}

// NeedsGraphviz reports whether any requested format needs the layout engine.
func (o *Options) NeedsGraphviz() bool {
	for _, f := range o.Formats {
		if graphvizFormats[f] {
			return true
		}
	}
	return false
}

// OutputPaths maps every format to the file it is written to. With a single
// format, output is used verbatim; with several it is a base path that gets
// the format as extension. Without output the input path is the base, so
// order.bpmn becomes order.bpmn.dot.
func OutputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := input
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
