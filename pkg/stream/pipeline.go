package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

// Pipeline runs steps connected by channels.
type Pipeline struct {
	ctx       context.Context
	cancel    context.CancelFunc
	results   *stepResults
	opts      []model.PipelineOption
	names     map[string]int
	startTime time.Time
}

// New creates a pipeline. Steps start as soon as they are added and stop when ctx is done.
func New(ctx context.Context, opts ...model.PipelineOption) (*Pipeline, error) {
	dCtx, cancel := context.WithCancel(ctx)
	pipe := &Pipeline{
		ctx:       dCtx,
		cancel:    cancel,
		results:   &stepResults{},
		startTime: time.Now(),
		opts:      opts,
		names:     map[string]int{model.Start.Name: 1, model.End.Name: 1},
	}

	for _, opt := range opts {
		if err := opt.New(); err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// Run waits for every step to finish. On the first error it cancels the remaining steps and returns that error.
func (p *Pipeline) Run() error {
	defer p.cancel()

	if err := firstError(p.results.snapshot()); err != nil {
		return err
	}

	for _, opt := range p.opts {
		if err := opt.Finish(); err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

// prepare gives step a name no other step of p uses, then announces it to the options.
func (p *Pipeline) prepare(parent, step *model.StepInfo) error {
	step.Name = p.claim(step.Name)

	for _, opt := range p.opts {
		if err := opt.Prepare(parent, step); err != nil {
			return errors.Wrapf(err, "unable to prepare %s", step.Name)
		}
	}

	return nil
}

// claim returns name, or name followed by the first free "#n" suffix when a step already uses it.
func (p *Pipeline) claim(name string) string {
	claimed := name
	for p.names[claimed] > 0 {
		p.names[name]++
		claimed = fmt.Sprintf("%s#%d", name, p.names[name])
	}

	p.names[claimed]++

	return claimed
}

func (p *Pipeline) observe(event model.Event) error {
	for _, opt := range p.opts {
		if err := opt.Observe(event); err != nil {
			return errors.Wrapf(err, "unable to observe %s", event.Step.Name)
		}
	}

	return nil
}

// launch runs fn in its own goroutine and tracks its error under name. release runs once fn returns.
func (p *Pipeline) launch(name string, fn func(ctx context.Context) error, release func()) {
	errC := make(chan error, 1)
	p.results.track(name, errC)

	go func() {
		defer func() {
			release()
			close(errC)
		}()

		if err := fn(p.ctx); err != nil {
			errC <- err
		}
	}()
}
