// Package almanac reads stage chains and their initial values from text or YAML documents.
package almanac

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/pkg/remap"
)

var (
	ErrNoStages       = errors.New("almanac has no stages")
	ErrMalformedEntry = errors.New("entry must have three numbers")
	ErrInvalidNumber  = errors.New("invalid number")
)

// Document is a parsed almanac.
type Document struct {
	// Start is the stage the initial values enter.
	Start string
	// Seeds are the initial values, also read as (start, length) pairs for interval walks.
	Seeds  []uint64
	Stages []remap.StageSpec
}

// Pipeline builds the stage chain of d. The seeds become the initial values and, when their count is even, the
// initial intervals.
func (d *Document) Pipeline(opts ...remap.Option) (*remap.Pipeline, error) {
	if len(d.Stages) == 0 {
		return nil, ErrNoStages
	}

	initial := []remap.Option{remap.WithValues(d.Seeds...)}
	if len(d.Seeds)%2 == 0 {
		intervals, err := remap.PairIntervals(d.Seeds)
		if err != nil {
			return nil, errors.Wrap(err, "unable to pair seeds")
		}

		initial = append(initial, remap.WithIntervals(intervals...))
	}

	pipe, err := remap.New(d.Start, d.Stages, append(initial, opts...)...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build pipeline")
	}

	return pipe, nil
}

// Load reads the almanac at path. Files ending in .yaml or .yml are read as YAML, anything else as text.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(content)
	default:
		return ParseText(path, string(content))
	}
}
