// Package drawer draws the steps of a stream run as a Graphviz DOT graph.
package drawer

import (
	"time"

	"github.com/Gate88/adventofcode2023/pkg/stream/measure"
)

// Drawer collects the steps of a run and draws them.
type Drawer interface {
	// AddStep adds a step to the drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and child steps.
	AddLink(parentStepName, childStepName string) error
	// Draw writes the graph.
	Draw() error
	// SetTotalTime labels a step with the time elapsed since startTime.
	SetTotalTime(stepName string, startTime time.Time) error
	// AddMeasure labels steps and links with the metrics of measure.
	AddMeasure(measure measure.Measure) error
}
