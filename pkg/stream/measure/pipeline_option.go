package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

var ErrUnknownMetric = errors.New("no metric for step")

type pipelineMeasure struct {
	Measure
}

// PipelineMeasure records every step of a run into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}

func (pm *pipelineMeasure) New() error {
	pm.Track(model.Start.Name, 1)
	pm.Track(model.End.Name, 1)

	return nil
}

func (pm *pipelineMeasure) Prepare(_, step *model.StepInfo) error {
	pm.Track(step.Name, step.Concurrent)

	return nil
}

func (pm *pipelineMeasure) metric(name string) (Metric, error) {
	mt := pm.Metric(name)
	if mt == nil {
		return nil, errors.Wrap(ErrUnknownMetric, name)
	}

	return mt, nil
}

func (pm *pipelineMeasure) Observe(event model.Event) error {
	mt, err := pm.metric(event.Step.Name)
	if err != nil {
		return err
	}

	mt.Observe(event.Parent.Name, event.Wait, event.Work, event.Emitted)

	return nil
}

func (pm *pipelineMeasure) Drained(sink *model.StepInfo, sinceStart time.Duration) error {
	mt, err := pm.metric(sink.Name)
	if err != nil {
		return err
	}

	mt.SetTotal(sinceStart)

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}
