package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/pkg/stream/measure"
	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
}

// PipelineDrawer draws the steps of a run once it succeeded. A non-nil measure must also be given to
// measure.PipelineMeasure for the same run.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}

func (pd *pipelineDrawer) New() error {
	pd.startTime = time.Now()

	for _, step := range []*model.StepInfo{model.Start, model.End} {
		if err := pd.AddStep(step.Name); err != nil {
			return errors.Wrapf(err, "unable to add %s step to drawer", step.Name)
		}
	}

	return nil
}

// Prepare links the step to its parent, and sinks to the end step.
func (pd *pipelineDrawer) Prepare(parent, step *model.StepInfo) error {
	if err := pd.AddStep(step.Name); err != nil {
		return err
	}

	if err := pd.AddLink(parent.Name, step.Name); err != nil {
		return err
	}

	if step.Type != model.SinkStepType {
		return nil
	}

	return pd.AddLink(step.Name, model.End.Name)
}

func (pd *pipelineDrawer) Observe(model.Event) error {
	return nil
}

func (pd *pipelineDrawer) Drained(*model.StepInfo, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		if err := pd.SetTotalTime(model.End.Name, pd.startTime); err != nil {
			return errors.Wrap(err, "unable to set total time")
		}

		if err := pd.AddMeasure(pd.m); err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	return errors.Wrap(pd.Draw(), "unable to draw pipeline")
}
