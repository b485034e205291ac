package stream

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

// AddSink consumes the output of input with a single goroutine, so sinkFn needs no locking.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if pipe == nil {
		return ErrPipelineMustBeSet
	}

	if input == nil {
		return ErrInputMustBeSet
	}

	sink := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}

	parent := parentOf(input)
	if err := pipe.prepare(parent, sink); err != nil {
		return err
	}

	pipe.launch(sink.Name, func(ctx context.Context) error {
		if err := consume(ctx, pipe.observe, parent, sink, input, sinkFn); err != nil {
			return err
		}

		for _, opt := range pipe.opts {
			if err := opt.Drained(sink, time.Since(pipe.startTime)); err != nil {
				return errors.Wrap(err, "unable to run after sink function")
			}
		}

		return nil
	}, func() {})

	return nil
}

func consume[I any](ctx context.Context, observe observeFn, parent, sink *model.StepInfo, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			startFn := time.Now()
			if err := sinkFn(ctx, in); err != nil {
				return err
			}
			work := time.Since(startFn)

			err := observe(model.Event{Parent: parent, Step: sink, Wait: time.Since(start) - work, Work: work})
			if err != nil {
				return err
			}
		}
	}
}
