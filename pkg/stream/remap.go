package stream

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/pkg/remap"
	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

// RootStepName names the step that feeds the initial queries.
const RootStepName = "<input>"

// Config tunes a concurrent walk.
type Config struct {
	// Concurrency is the number of goroutines translating values in every stage.
	Concurrency int
	// BufferSize is the capacity of the channel between two stages.
	BufferSize int
	// Options observe the run, e.g. measure.PipelineMeasure or drawer.PipelineDrawer.
	Options []model.PipelineOption
}

// StepName names the step applying the table of from before handing values to to.
func StepName(from, to string) string {
	return from + "-to-" + to
}

// RunValues walks values through the chain of pipe. The order of the result is unspecified.
func RunValues(ctx context.Context, pipe *remap.Pipeline, values []uint64, cfg Config) (remap.ValueResult, error) {
	return run(ctx, pipe, values, cfg, func(p *Pipeline, name string, stage *remap.Stage, input *model.Step[uint64]) (*model.Step[uint64], error) {
		return AddStepOneToOne(p, name, input, func(_ context.Context, v uint64) (uint64, error) {
			return stage.TranslateValue(v), nil
		}, stepOptions[uint64](cfg)...)
	}, func(values []uint64, terminal string) remap.ValueResult {
		return remap.ValueResult{Values: values, Terminal: terminal}
	})
}

// RunIntervals walks intervals through the chain of pipe, splitting them stage after stage.
// The order of the result is unspecified; its content matches remap.Pipeline.RunIntervals.
func RunIntervals(ctx context.Context, pipe *remap.Pipeline, intervals []remap.Interval, cfg Config) (remap.RangeResult, error) {
	for _, r := range intervals {
		if err := r.Validate(); err != nil {
			return remap.RangeResult{}, errors.Wrap(err, "invalid query")
		}
	}

	return run(ctx, pipe, intervals, cfg, func(p *Pipeline, name string, stage *remap.Stage, input *model.Step[remap.Interval]) (*model.Step[remap.Interval], error) {
		return AddStepOneToMany(p, name, input, func(_ context.Context, r remap.Interval) ([]remap.Interval, error) {
			return stage.TranslateInterval(r)
		}, stepOptions[remap.Interval](cfg)...)
	}, func(intervals []remap.Interval, terminal string) remap.RangeResult {
		return remap.RangeResult{Intervals: intervals, Terminal: terminal}
	})
}

func stepOptions[O any](cfg Config) []StepOption[O] {
	return []StepOption[O]{
		StepConcurrency[O](cfg.Concurrency),
		StepBufferSize[O](cfg.BufferSize),
	}
}

type addStageFn[T any] func(p *Pipeline, name string, stage *remap.Stage, input *model.Step[T]) (*model.Step[T], error)

func run[T, R any](ctx context.Context, pipe *remap.Pipeline, items []T, cfg Config, addStage addStageFn[T], result func([]T, string) R) (R, error) {
	var zero R

	if pipe == nil {
		return zero, ErrPipelineMustBeSet
	}

	p, err := New(ctx, cfg.Options...)
	if err != nil {
		return zero, err
	}
	defer p.cancel()

	step, err := AddRootStep(p, RootStepName, func(ctx context.Context, rootChan chan<- T) error {
		for _, item := range items {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- item:
			}
		}

		return nil
	}, StepBufferSize[T](cfg.BufferSize))
	if err != nil {
		return zero, errors.Wrap(err, "unable to add root step")
	}

	chain := pipe.Chain()
	for i := 0; i < len(chain)-1; i++ {
		stage, _ := pipe.Stage(chain[i])

		step, err = addStage(p, StepName(chain[i], chain[i+1]), stage, step)
		if err != nil {
			return zero, errors.Wrapf(err, "unable to add stage %s", chain[i])
		}
	}

	terminal := pipe.Terminal()
	collected := []T{}

	err = AddSink(p, terminal, step, func(_ context.Context, item T) error {
		collected = append(collected, item)

		return nil
	})
	if err != nil {
		return zero, errors.Wrap(err, "unable to add sink")
	}

	err = p.Run()
	if err != nil {
		return zero, err
	}

	return result(collected, terminal), nil
}
