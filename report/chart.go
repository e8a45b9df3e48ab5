package report

import (
	"encoding/json"

	"github.com/singjc/report-builder/pkg/errors"
	"github.com/singjc/report-builder/pkg/idgen"
)

// ChartSizing controls the layout slot a chart is bound to: responsive
// containers re-layout on viewport resize, fixed containers lock dimensions.
type ChartSizing struct {
	Responsive bool
	Width      int
	Height     int
}

// Responsive returns sizing that tracks the viewport.
func Responsive() ChartSizing {
	return ChartSizing{Responsive: true}
}

// Fixed returns sizing locked to the given pixel dimensions.
func Fixed(width, height int) ChartSizing {
	return ChartSizing{Width: width, Height: height}
}

// Chart binds an opaque chart definition, produced by an external charting
// collaborator, to a layout slot. The definition is validated to be JSON at
// construction so that rendering never has to fail; beyond that it is never
// introspected or mutated.
type Chart struct {
	id         string
	definition string
	sizing     ChartSizing
	sealed     bool
}

// NewChart creates a chart from a serialized chart definition.
// The definition must be non-empty, syntactically valid JSON; anything else
// is reported as a serialization failure at this call.
func NewChart(definition string, sizing ChartSizing) (*Chart, error) {
	if definition == "" {
		return nil, errors.ErrChartSpec("chart definition is empty")
	}
	if !json.Valid([]byte(definition)) {
		return nil, errors.ErrChartSpec("chart definition is not valid JSON")
	}
	if !sizing.Responsive && (sizing.Width <= 0 || sizing.Height <= 0) {
		return nil, errors.ErrValidation("fixed sizing requires positive width and height")
	}
	return &Chart{
		id:         idgen.NewChartID(),
		definition: definition,
		sizing:     sizing,
	}, nil
}

// ID returns the chart's DOM identifier.
func (c *Chart) ID() string { return c.id }

// Definition returns the opaque chart definition.
func (c *Chart) Definition() string { return c.definition }

// Sizing returns the chart's layout sizing.
func (c *Chart) Sizing() ChartSizing { return c.sizing }

// seal marks the chart as attached to a section.
func (c *Chart) seal() error {
	if c.sealed {
		return errors.ErrValidation("chart is already attached to a section")
	}
	c.sealed = true
	return nil
}
