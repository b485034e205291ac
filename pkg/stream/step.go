package stream

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

type observeFn func(model.Event) error

func sequentialOneToMany[I, O any](ctx context.Context, observe observeFn, goIdx int, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error)) error {
	parent := parentOf(input)

	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			startFn := time.Now()
			outs, err := oneToManyFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}
			work := time.Since(startFn)

			for _, out := range outs {
				// stop pushing as soon as another goroutine failed
				select {
				case <-ctx.Done():
					return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
				case output.Output <- out:
				}
			}

			err = observe(model.Event{
				Parent:  parent,
				Step:    output.Details,
				Wait:    time.Since(start) - work,
				Work:    work,
				Emitted: len(outs),
			})
			if err != nil {
				return err
			}
		}
	}
}

// runOneToMany reads input with as many goroutines as the output step allows.
// Every goroutine stops as soon as one of them fails.
func runOneToMany[I, O any](ctx context.Context, observe observeFn, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error)) error {
	concurrent := 1
	if output.Details != nil && output.Details.Concurrent > 1 {
		concurrent = output.Details.Concurrent
	}

	if concurrent == 1 {
		return sequentialOneToMany(ctx, observe, 0, input, output, oneToManyFn)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)

	for goIdx := range concurrent {
		errGrp.Go(func() error {
			return sequentialOneToMany(dCtx, observe, goIdx, input, output, oneToManyFn)
		})
	}

	return errGrp.Wait()
}

func runOneToOne[I, O any](ctx context.Context, observe observeFn, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	return runOneToMany(ctx, observe, input, output, oneToMany(oneToOneFn))
}

func oneToMany[I, O any](oneToOneFn func(context.Context, I) (O, error)) func(context.Context, I) ([]O, error) {
	return func(ctx context.Context, in I) ([]O, error) {
		out, err := oneToOneFn(ctx, in)
		if err != nil {
			return nil, err
		}

		return []O{out}, nil
	}
}

// newStep describes a step and opens its output channel once opts are applied.
func newStep[O any](stepType model.StepType, name string, opts ...StepOption[O]) *model.Step[O] {
	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       stepType,
			Name:       name,
			Concurrent: 1,
		},
	}

	for _, opt := range opts {
		opt(step)
	}

	step.Output = make(chan O, max(step.Details.BufferSize, 0))

	return step
}

func parentOf[I any](input *model.Step[I]) *model.StepInfo {
	if input.Details == nil {
		return model.Start
	}

	return input.Details
}

// AddStepOneToMany adds a step producing any number of outputs for every input.
func AddStepOneToMany[I, O any](pipe *Pipeline, name string, input *model.Step[I], oneToManyFn func(context.Context, I) ([]O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := newStep(model.NormalStepType, name, opts...)
	if err := pipe.prepare(parentOf(input), step.Details); err != nil {
		return nil, err
	}

	pipe.launch(step.Details.Name, func(ctx context.Context) error {
		return runOneToMany(ctx, pipe.observe, input, step, oneToManyFn)
	}, func() { close(step.Output) })

	return step, nil
}

// AddStepOneToOne adds a step producing exactly one output for every input.
func AddStepOneToOne[I, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	return AddStepOneToMany(pipe, name, input, oneToMany(oneToOneFn), opts...)
}
