// Package measure records how long every step of a stream run spends on its inputs.
package measure

import "time"

// Measure holds one Metric per step.
type Measure interface {
	// Track registers the step name, read by concurrent goroutines, and returns its metric.
	Track(name string, concurrent int) Metric
	// Metric returns the metric of name, or nil.
	Metric(name string) Metric
	Metrics() map[string]Metric
}

// Metric accumulates what a step did with its inputs.
type Metric interface {
	// Observe records one input received from parent.
	Observe(parent string, wait, work time.Duration, emitted int)
	// Count is the number of inputs observed.
	Count() int64
	// Emitted is the number of outputs produced from them.
	Emitted() int64
	AvgWork() time.Duration
	// AvgWait returns the average wait per input for every parent, divided by the concurrency of the step.
	AvgWait() map[string]time.Duration
	SetTotal(total time.Duration)
	Total() time.Duration
}
