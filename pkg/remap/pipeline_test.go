package remap_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gate88/adventofcode2023/pkg/remap"
)

// exampleSpecs is the sample almanac from the puzzle statement.
func exampleSpecs() []remap.StageSpec {
	return []remap.StageSpec{
		{Name: "seed", Next: "soil", Entries: [][3]uint64{{50, 98, 2}, {52, 50, 48}}},
		{Name: "soil", Next: "fertilizer", Entries: [][3]uint64{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}}},
		{Name: "fertilizer", Next: "water", Entries: [][3]uint64{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}}},
		{Name: "water", Next: "light", Entries: [][3]uint64{{88, 18, 7}, {18, 25, 70}}},
		{Name: "light", Next: "temperature", Entries: [][3]uint64{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}}},
		{Name: "temperature", Next: "humidity", Entries: [][3]uint64{{0, 69, 1}, {1, 0, 69}}},
		{Name: "humidity", Next: "location", Entries: [][3]uint64{{60, 56, 37}, {56, 93, 4}}},
		{Name: "location"},
	}
}

func examplePipeline(t *testing.T, opts ...remap.Option) *remap.Pipeline {
	t.Helper()

	seeds := []uint64{79, 14, 55, 13}
	intervals, err := remap.PairIntervals(seeds)
	require.NoError(t, err)

	opts = append([]remap.Option{remap.WithValues(seeds...), remap.WithIntervals(intervals...)}, opts...)
	pipe, err := remap.New("seed", exampleSpecs(), opts...)
	require.NoError(t, err)

	return pipe
}

func TestNewPipeline(t *testing.T) {
	t.Parallel()

	pipe := examplePipeline(t)

	assert.Equal(t, "seed", pipe.Start())
	assert.Equal(t, "location", pipe.Terminal())
	assert.Equal(t, 7, pipe.Depth())
	assert.Equal(t, []string{"seed", "soil", "fertilizer", "water", "light", "temperature", "humidity", "location"}, pipe.Chain())
	assert.Equal(t, []uint64{79, 14, 55, 13}, pipe.Values())
	assert.Equal(t, []remap.Interval{{Start: 79, Length: 14}, {Start: 55, Length: 13}}, pipe.Intervals())

	stage, ok := pipe.Stage("water")
	require.True(t, ok)
	assert.Equal(t, 2, stage.Len())

	_, ok = pipe.Stage("unknown")
	assert.False(t, ok)
}

func TestNewPipelineErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		start   string
		specs   []remap.StageSpec
		wantErr error
	}{
		"overlapping entries": {
			start: "a",
			specs: []remap.StageSpec{
				{Name: "a", Next: "b", Entries: [][3]uint64{{0, 10, 5}, {100, 12, 5}}},
				{Name: "b"},
			},
			wantErr: remap.ErrOverlappingEntries,
		},
		"zero length entry": {
			start:   "a",
			specs:   []remap.StageSpec{{Name: "a", Entries: [][3]uint64{{0, 10, 0}}}},
			wantErr: remap.ErrZeroLength,
		},
		"dangling next": {
			start:   "a",
			specs:   []remap.StageSpec{{Name: "a", Next: "b"}},
			wantErr: remap.ErrUnknownStage,
		},
		"unknown start": {
			start:   "z",
			specs:   []remap.StageSpec{{Name: "a"}},
			wantErr: remap.ErrUnknownStage,
		},
		"duplicate stage": {
			start:   "a",
			specs:   []remap.StageSpec{{Name: "a"}, {Name: "a"}},
			wantErr: remap.ErrDuplicateStage,
		},
		"empty name": {
			start:   "a",
			specs:   []remap.StageSpec{{Name: ""}},
			wantErr: remap.ErrEmptyStageName,
		},
		"self loop": {
			start:   "a",
			specs:   []remap.StageSpec{{Name: "a", Next: "a"}},
			wantErr: remap.ErrCyclicChain,
		},
		"cycle": {
			start: "a",
			specs: []remap.StageSpec{
				{Name: "a", Next: "b"},
				{Name: "b", Next: "c"},
				{Name: "c", Next: "a"},
			},
			wantErr: remap.ErrCyclicChain,
		},
		"cycle away from start": {
			start: "a",
			specs: []remap.StageSpec{
				{Name: "a", Next: "b"},
				{Name: "b", Next: "c"},
				{Name: "c", Next: "b"},
			},
			wantErr: remap.ErrCyclicChain,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := remap.New(tc.start, tc.specs)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, pipe)
		})
	}
}

func TestNewPipelineIgnoresUnreachableStages(t *testing.T) {
	t.Parallel()

	pipe, err := remap.New("a", []remap.StageSpec{
		{Name: "a", Next: "b"},
		{Name: "b"},
		{Name: "orphan", Next: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, pipe.Chain())
}

func TestPipelineLogsHops(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	pipe := examplePipeline(t, remap.WithLogger(zerolog.New(buf).Level(zerolog.DebugLevel)))

	got, terminal := pipe.RunValue(79)
	assert.Equal(t, uint64(82), got)
	assert.Equal(t, "location", terminal)
	assert.Contains(t, buf.String(), `"stage":"seed","next":"soil","in":79,"out":81`)
	assert.Equal(t, 7, bytes.Count(buf.Bytes(), []byte("translated value")))
}
