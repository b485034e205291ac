package model

// StepType is the kind of a step.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step whatever the type of values it carries.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
	BufferSize int
}

// Start and End are the virtual ends of every run. Roots hang from Start and sinks lead to End.
// Their names are bracketed so they stay apart from the usual step names.
var (
	Start = &StepInfo{Name: "<start>"}
	End   = &StepInfo{Name: "<end>"}
)

// Step is the output channel of a step with its description.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}
