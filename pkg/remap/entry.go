package remap

import (
	"fmt"

	"github.com/pkg/errors"
)

// Entry maps every value of Source onto Destination by a constant offset.
type Entry struct {
	Source      Interval
	Destination Interval
}

// NewEntry builds an entry from a (destination start, source start, length) triple.
func NewEntry(destinationStart, sourceStart, length uint64) (Entry, error) {
	src, err := NewInterval(sourceStart, length)
	if err != nil {
		return Entry{}, errors.Wrap(err, "invalid source")
	}

	dst, err := NewInterval(destinationStart, length)
	if err != nil {
		return Entry{}, errors.Wrap(err, "invalid destination")
	}

	return Entry{Source: src, Destination: dst}, nil
}

// Validate checks both intervals and that they have the same length.
func (e Entry) Validate() error {
	if e.Source.Length != e.Destination.Length {
		return errors.Wrapf(ErrLengthMismatch, "source %s, destination %s", e.Source, e.Destination)
	}

	if err := e.Source.Validate(); err != nil {
		return errors.Wrap(err, "invalid source")
	}

	if err := e.Destination.Validate(); err != nil {
		return errors.Wrap(err, "invalid destination")
	}

	return nil
}

// Translate maps v, which must lie in e.Source.
func (e Entry) Translate(v uint64) uint64 {
	return v - e.Source.Start + e.Destination.Start
}

func (e Entry) String() string {
	return fmt.Sprintf("%s->%s", e.Source, e.Destination)
}
