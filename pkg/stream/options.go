package stream

import "github.com/Gate88/adventofcode2023/pkg/stream/model"

type StepOption[O any] func(s *model.Step[O])

// StepConcurrency sets how many goroutines read the input of a step.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.Concurrent = concurrent
	}
}

// StepBufferSize sets the capacity of the output channel of a step.
func StepBufferSize[O any](bufferSize int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.BufferSize = bufferSize
	}
}
