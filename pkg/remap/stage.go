package remap

import (
	"sort"

	"github.com/pkg/errors"
)

// Stage is a named table of mapping entries, sorted by source start and pairwise disjoint.
// Gaps between entries map values onto themselves.
type Stage struct {
	name    string
	next    string
	entries []Entry
}

// NewStage validates and sorts entries. An empty next marks the stage as terminal.
func NewStage(name, next string, entries ...Entry) (*Stage, error) {
	if name == "" {
		return nil, ErrEmptyStageName
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)

	for i, entry := range sorted {
		if err := entry.Validate(); err != nil {
			return nil, errors.Wrapf(err, "stage %s: entry %d", name, i)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Source.Start < sorted[j].Source.Start
	})

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1].Source, sorted[i].Source
		if prev.Overlaps(curr) {
			return nil, errors.Wrapf(ErrOverlappingEntries, "stage %s: %s and %s", name, prev, curr)
		}
	}

	return &Stage{
		name:    name,
		next:    next,
		entries: sorted,
	}, nil
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return s.name
}

// Next returns the name of the following stage, if any.
func (s *Stage) Next() (string, bool) {
	return s.next, s.next != ""
}

// Terminal returns true if no stage follows s.
func (s *Stage) Terminal() bool {
	return s.next == ""
}

// Entries returns a copy of the sorted entries.
func (s *Stage) Entries() []Entry {
	res := make([]Entry, len(s.entries))
	copy(res, s.entries)

	return res
}

// Len returns the number of entries.
func (s *Stage) Len() int {
	return len(s.entries)
}

// search returns the index of the first entry whose source ends after v.
func (s *Stage) search(v uint64) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Source.End() > v
	})
}

// Lookup returns the entry whose source contains v.
func (s *Stage) Lookup(v uint64) (Entry, bool) {
	i := s.search(v)
	if i < len(s.entries) && s.entries[i].Source.Start <= v {
		return s.entries[i], true
	}

	return Entry{}, false
}

// TranslateValue maps v through the stage. Unmapped values are returned unchanged.
func (s *Stage) TranslateValue(v uint64) uint64 {
	if entry, ok := s.Lookup(v); ok {
		return entry.Translate(v)
	}

	return v
}

// TranslateInterval splits r against the entries and maps every piece.
// Pieces are emitted left to right in the order they appear in r, so gaps come out unchanged
// between the shifted overlaps. Their lengths always add up to r.Length.
func (s *Stage) TranslateInterval(r Interval) ([]Interval, error) {
	if err := r.Validate(); err != nil {
		return nil, errors.Wrapf(err, "stage %s", s.name)
	}

	start, end := r.Start, r.End()
	res := make([]Interval, 0, 1)

	for i := s.search(start); i < len(s.entries) && start < end; i++ {
		entry := s.entries[i]
		if entry.Source.Start >= end {
			break
		}

		if start < entry.Source.Start {
			res = append(res, Interval{Start: start, Length: entry.Source.Start - start})
			start = entry.Source.Start
		}

		overlapEnd := min(end, entry.Source.End())
		res = append(res, Interval{Start: entry.Translate(start), Length: overlapEnd - start})
		start = overlapEnd
	}

	if start < end {
		res = append(res, Interval{Start: start, Length: end - start})
	}

	return res, nil
}
