package remap

import (
	"github.com/pkg/errors"
)

// ValueResult holds the scalar queries after the last transition.
type ValueResult struct {
	Values   []uint64
	Terminal string
}

// Min returns the smallest final value.
func (r ValueResult) Min() (uint64, error) {
	return MinValue(r.Values)
}

// RangeResult holds the interval queries after the last transition.
type RangeResult struct {
	Intervals []Interval
	Terminal  string
}

// Min returns the smallest start among the final intervals.
func (r RangeResult) Min() (uint64, error) {
	return MinStart(r.Intervals)
}

// RunValue walks v from the start stage to the terminal stage.
func (p *Pipeline) RunValue(v uint64) (uint64, string) {
	for i := 0; i < len(p.chain)-1; i++ {
		stage, next := p.stages[p.chain[i]], p.chain[i+1]
		out := stage.TranslateValue(v)

		p.logger.Debug().
			Str("stage", stage.Name()).
			Str("next", next).
			Uint64("in", v).
			Uint64("out", out).
			Msg("translated value")
		p.hop(Hop{From: stage.Name(), To: next, Items: 1})

		v = out
	}

	return v, p.Terminal()
}

// RunValues walks every value independently.
func (p *Pipeline) RunValues(values []uint64) ValueResult {
	res := ValueResult{
		Values:   make([]uint64, 0, len(values)),
		Terminal: p.Terminal(),
	}

	for _, v := range values {
		out, _ := p.RunValue(v)
		res.Values = append(res.Values, out)
	}

	return res
}

// RunInterval walks a single interval to the terminal stage.
func (p *Pipeline) RunInterval(r Interval) ([]Interval, string, error) {
	return p.RunIntervals([]Interval{r})
}

// RunIntervals splits the intervals stage after stage and returns the pieces reaching the terminal stage.
// Zero-length intervals are rejected even when the start stage is terminal.
func (p *Pipeline) RunIntervals(intervals []Interval) ([]Interval, string, error) {
	for _, r := range intervals {
		if err := r.Validate(); err != nil {
			return nil, "", errors.Wrap(err, "invalid query")
		}
	}

	current := make([]Interval, len(intervals))
	copy(current, intervals)

	for i := 0; i < len(p.chain)-1; i++ {
		stage, next := p.stages[p.chain[i]], p.chain[i+1]
		translated := make([]Interval, 0, len(current))

		for _, r := range current {
			pieces, err := stage.TranslateInterval(r)
			if err != nil {
				return nil, "", err
			}

			translated = append(translated, pieces...)
		}

		p.logger.Debug().
			Str("stage", stage.Name()).
			Str("next", next).
			Int("in", len(current)).
			Int("out", len(translated)).
			Msg("translated intervals")
		p.hop(Hop{From: stage.Name(), To: next, Items: len(translated)})

		current = translated
	}

	return current, p.Terminal(), nil
}

// RunToTerminal walks the initial values.
func (p *Pipeline) RunToTerminal() ValueResult {
	return p.RunValues(p.values)
}

// RunRangesToTerminal walks the initial intervals.
func (p *Pipeline) RunRangesToTerminal() (RangeResult, error) {
	intervals, terminal, err := p.RunIntervals(p.intervals)
	if err != nil {
		return RangeResult{}, err
	}

	return RangeResult{Intervals: intervals, Terminal: terminal}, nil
}

func (p *Pipeline) hop(h Hop) {
	if p.onHop != nil {
		p.onHop(h)
	}
}

// MinValue returns the smallest of values.
func MinValue(values []uint64) (uint64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyResult
	}

	res := values[0]
	for _, v := range values[1:] {
		res = min(res, v)
	}

	return res, nil
}

// MinStart returns the smallest start of intervals.
func MinStart(intervals []Interval) (uint64, error) {
	if len(intervals) == 0 {
		return 0, ErrEmptyResult
	}

	res := intervals[0].Start
	for _, r := range intervals[1:] {
		res = min(res, r.Start)
	}

	return res, nil
}
