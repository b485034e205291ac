package model

import "time"

// Event describes one input handled by a step or a sink.
type Event struct {
	Parent *StepInfo
	Step   *StepInfo
	// Wait is the time spent waiting for the input and pushing the outputs.
	Wait time.Duration
	// Work is the time spent computing the outputs.
	Work time.Duration
	// Emitted is the number of outputs. An interval split into three pieces by a stage emits 3.
	Emitted int
}

// PipelineOption observes a run. Observe may be called from several goroutines at once.
type PipelineOption interface {
	// New runs when the pipeline is created.
	New() error
	// Prepare runs when a step or a sink is added, before it receives anything. step.Type tells them apart.
	Prepare(parent, step *StepInfo) error
	// Observe runs every time a step or a sink handles an input.
	Observe(event Event) error
	// Drained runs once a sink has consumed its whole input.
	Drained(sink *StepInfo, sinceStart time.Duration) error
	// Finish runs after every step succeeded.
	Finish() error
}
