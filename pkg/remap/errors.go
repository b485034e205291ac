package remap

import "github.com/pkg/errors"

var (
	ErrZeroLength         = errors.New("interval length must be greater than 0")
	ErrOverflow           = errors.New("interval end overflows uint64")
	ErrLengthMismatch     = errors.New("source and destination lengths differ")
	ErrOverlappingEntries = errors.New("mapping entries overlap")
	ErrEmptyStageName     = errors.New("stage name must be set")
	ErrDuplicateStage     = errors.New("stage is defined more than once")
	ErrUnknownStage       = errors.New("stage does not exist")
	ErrCyclicChain        = errors.New("stage chain contains a cycle")
	ErrOddPairs           = errors.New("interval pairs need an even number of values")
	ErrEmptyResult        = errors.New("no result to reduce")
)
