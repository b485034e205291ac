package remap

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Interval is the half-open range [Start, Start+Length).
type Interval struct {
	Start  uint64
	Length uint64
}

// NewInterval returns a validated interval.
func NewInterval(start, length uint64) (Interval, error) {
	r := Interval{Start: start, Length: length}
	if err := r.Validate(); err != nil {
		return Interval{}, err
	}

	return r, nil
}

// Validate reports whether r is non-empty and its end fits in a uint64.
func (r Interval) Validate() error {
	if r.Length == 0 {
		return errors.Wrapf(ErrZeroLength, "interval starting at %d", r.Start)
	}

	if r.Start > math.MaxUint64-r.Length {
		return errors.Wrapf(ErrOverflow, "interval starting at %d with length %d", r.Start, r.Length)
	}

	return nil
}

// End returns the exclusive end of r.
func (r Interval) End() uint64 {
	return r.Start + r.Length
}

// Contains returns true if r contains v.
func (r Interval) Contains(v uint64) bool {
	return r.Start <= v && v < r.End()
}

// Overlaps returns true if r and o share at least one value.
func (r Interval) Overlaps(o Interval) bool {
	return r.Start < o.End() && o.Start < r.End()
}

// Intersect returns the values shared by r and o. The boolean is false when they do not overlap.
func (r Interval) Intersect(o Interval) (Interval, bool) {
	if !r.Overlaps(o) {
		return Interval{}, false
	}

	start := max(r.Start, o.Start)
	end := min(r.End(), o.End())

	return Interval{Start: start, Length: end - start}, true
}

func (r Interval) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

// PairIntervals reads values as consecutive (start, length) pairs.
// The intervals are not validated here; zero-length pairs are rejected when they are translated.
func PairIntervals(values []uint64) ([]Interval, error) {
	if len(values)%2 != 0 {
		return nil, errors.Wrapf(ErrOddPairs, "got %d values", len(values))
	}

	res := make([]Interval, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		res = append(res, Interval{Start: values[i], Length: values[i+1]})
	}

	return res, nil
}
