package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bpmndot/pkg/bpmn"
	"github.com/matzehuels/bpmndot/pkg/errors"
	bpmnio "github.com/matzehuels/bpmndot/pkg/io"
	"github.com/matzehuels/bpmndot/pkg/render"
)

// Render produces the requested formats for g, whose DOT serialization is
// dot. The SVG is laid out once and reused for png and pdf.
func Render(ctx context.Context, g *bpmn.Graph, dot string, formats []string, scale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	var svg []byte
	layout := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = render.RenderSVG(ctx, dot)
		return svg, err
	}

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = bpmnio.MarshalJSON(g)
		case FormatSVG:
			data, err = layout()
		case FormatPNG:
			if data, err = layout(); err == nil {
				data, err = render.ToPNG(ctx, data, scale)
			}
		case FormatPDF:
			if data, err = layout(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
