package stream

import (
	"context"

	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

// AddRootStep adds the step that feeds the pipeline. stepFn owns rootChan until it returns; the channel is closed
// afterwards.
func AddRootStep[O any](pipe *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := newStep(model.RootStepType, name, opts...)
	if err := pipe.prepare(model.Start, step.Details); err != nil {
		return nil, err
	}

	pipe.launch(step.Details.Name, func(ctx context.Context) error {
		return stepFn(ctx, step.Output)
	}, func() { close(step.Output) })

	return step, nil
}
