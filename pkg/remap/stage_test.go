package remap_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gate88/adventofcode2023/pkg/remap"
)

func mustEntry(t *testing.T, dst, src, length uint64) remap.Entry {
	t.Helper()

	entry, err := remap.NewEntry(dst, src, length)
	require.NoError(t, err)

	return entry
}

func seedToSoil(t *testing.T) *remap.Stage {
	t.Helper()

	stage, err := remap.NewStage("seed", "soil", mustEntry(t, 50, 98, 2))
	require.NoError(t, err)

	return stage
}

func TestNewStageSortsEntries(t *testing.T) {
	t.Parallel()

	stage, err := remap.NewStage("seed", "soil", mustEntry(t, 50, 98, 2), mustEntry(t, 52, 50, 48))
	require.NoError(t, err)

	entries := stage.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(50), entries[0].Source.Start)
	assert.Equal(t, uint64(98), entries[1].Source.Start)
	assert.Equal(t, 2, stage.Len())
	assert.Equal(t, "seed", stage.Name())

	next, ok := stage.Next()
	assert.True(t, ok)
	assert.Equal(t, "soil", next)
	assert.False(t, stage.Terminal())
}

func TestNewStageErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name    string
		entries []remap.Entry
		wantErr error
	}{
		"empty name": {
			name:    "",
			wantErr: remap.ErrEmptyStageName,
		},
		"overlapping": {
			name: "seed",
			entries: []remap.Entry{
				{Source: remap.Interval{Start: 10, Length: 5}, Destination: remap.Interval{Start: 0, Length: 5}},
				{Source: remap.Interval{Start: 14, Length: 5}, Destination: remap.Interval{Start: 100, Length: 5}},
			},
			wantErr: remap.ErrOverlappingEntries,
		},
		"same source start": {
			name: "seed",
			entries: []remap.Entry{
				{Source: remap.Interval{Start: 10, Length: 1}, Destination: remap.Interval{Start: 0, Length: 1}},
				{Source: remap.Interval{Start: 10, Length: 1}, Destination: remap.Interval{Start: 5, Length: 1}},
			},
			wantErr: remap.ErrOverlappingEntries,
		},
		"length mismatch": {
			name: "seed",
			entries: []remap.Entry{
				{Source: remap.Interval{Start: 10, Length: 2}, Destination: remap.Interval{Start: 0, Length: 3}},
			},
			wantErr: remap.ErrLengthMismatch,
		},
		"zero length": {
			name: "seed",
			entries: []remap.Entry{
				{Source: remap.Interval{Start: 10}, Destination: remap.Interval{Start: 0}},
			},
			wantErr: remap.ErrZeroLength,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := remap.NewStage(tc.name, "", tc.entries...)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewStageAdjacentEntries(t *testing.T) {
	t.Parallel()

	stage, err := remap.NewStage("seed", "", mustEntry(t, 0, 10, 5), mustEntry(t, 100, 15, 5))
	require.NoError(t, err)
	assert.True(t, stage.Terminal())
}

func TestTranslateValue(t *testing.T) {
	t.Parallel()

	stage := seedToSoil(t)

	assert.Equal(t, uint64(51), stage.TranslateValue(99))
	assert.Equal(t, uint64(50), stage.TranslateValue(98))
	assert.Equal(t, uint64(10), stage.TranslateValue(10))
	assert.Equal(t, uint64(100), stage.TranslateValue(100))
	assert.Equal(t, uint64(math.MaxUint64), stage.TranslateValue(math.MaxUint64))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	stage, err := remap.NewStage("seed", "soil", mustEntry(t, 50, 98, 2), mustEntry(t, 52, 50, 48))
	require.NoError(t, err)

	entry, ok := stage.Lookup(79)
	require.True(t, ok)
	assert.Equal(t, uint64(50), entry.Source.Start)

	_, ok = stage.Lookup(49)
	assert.False(t, ok)

	_, ok = stage.Lookup(100)
	assert.False(t, ok)
}

func TestTranslateInterval(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		entries []remap.Entry
		input   remap.Interval
		want    []remap.Interval
	}{
		"spanning gap and entry": {
			entries: []remap.Entry{mustEntry(t, 50, 98, 2)},
			input:   remap.Interval{Start: 95, Length: 10},
			want: []remap.Interval{
				{Start: 95, Length: 3},
				{Start: 50, Length: 2},
				{Start: 100, Length: 5},
			},
		},
		"exact entry": {
			entries: []remap.Entry{mustEntry(t, 50, 98, 2), mustEntry(t, 52, 50, 48)},
			input:   remap.Interval{Start: 50, Length: 48},
			want:    []remap.Interval{{Start: 52, Length: 48}},
		},
		"inside entry": {
			entries: []remap.Entry{mustEntry(t, 52, 50, 48)},
			input:   remap.Interval{Start: 79, Length: 14},
			want:    []remap.Interval{{Start: 81, Length: 14}},
		},
		"before every entry": {
			entries: []remap.Entry{mustEntry(t, 50, 98, 2)},
			input:   remap.Interval{Start: 10, Length: 5},
			want:    []remap.Interval{{Start: 10, Length: 5}},
		},
		"after every entry": {
			entries: []remap.Entry{mustEntry(t, 50, 98, 2)},
			input:   remap.Interval{Start: 100, Length: 5},
			want:    []remap.Interval{{Start: 100, Length: 5}},
		},
		"ends where entry starts": {
			entries: []remap.Entry{mustEntry(t, 50, 98, 2)},
			input:   remap.Interval{Start: 90, Length: 8},
			want:    []remap.Interval{{Start: 90, Length: 8}},
		},
		"several entries and gaps": {
			entries: []remap.Entry{mustEntry(t, 100, 10, 5), mustEntry(t, 200, 20, 5)},
			input:   remap.Interval{Start: 5, Length: 25},
			want: []remap.Interval{
				{Start: 5, Length: 5},
				{Start: 100, Length: 5},
				{Start: 15, Length: 5},
				{Start: 200, Length: 5},
				{Start: 25, Length: 5},
			},
		},
		"adjacent entries": {
			entries: []remap.Entry{mustEntry(t, 100, 10, 5), mustEntry(t, 0, 15, 5)},
			input:   remap.Interval{Start: 12, Length: 6},
			want: []remap.Interval{
				{Start: 102, Length: 3},
				{Start: 0, Length: 3},
			},
		},
		"no entries": {
			input: remap.Interval{Start: 7, Length: 3},
			want:  []remap.Interval{{Start: 7, Length: 3}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stage, err := remap.NewStage("stage", "", tc.entries...)
			require.NoError(t, err)

			got, err := stage.TranslateInterval(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTranslateIntervalZeroLength(t *testing.T) {
	t.Parallel()

	_, err := seedToSoil(t).TranslateInterval(remap.Interval{Start: 98})
	require.ErrorIs(t, err, remap.ErrZeroLength)
}

func TestEmptyStageIsIdentity(t *testing.T) {
	t.Parallel()

	stage, err := remap.NewStage("identity", "")
	require.NoError(t, err)

	for _, v := range []uint64{0, 1, 98, math.MaxUint64} {
		assert.Equal(t, v, stage.TranslateValue(v))
	}

	r := remap.Interval{Start: 42, Length: 1000}
	got, err := stage.TranslateInterval(r)
	require.NoError(t, err)
	assert.Equal(t, []remap.Interval{r}, got)
}

// randomStage builds a stage with disjoint entries inside [0, 200).
func randomStage(t *testing.T, rnd *rand.Rand) *remap.Stage {
	t.Helper()

	entries := []remap.Entry{}
	for pos := uint64(rnd.Intn(10)); pos < 200; {
		length := uint64(rnd.Intn(15) + 1)
		if rnd.Intn(3) > 0 {
			entries = append(entries, mustEntry(t, uint64(rnd.Intn(500)), pos, length))
		}

		pos += length + uint64(rnd.Intn(8))
	}

	rnd.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })

	stage, err := remap.NewStage("random", "", entries...)
	require.NoError(t, err)

	return stage
}

func TestTranslateIntervalMatchesTranslateValue(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(5))

	for range 200 {
		stage := randomStage(t, rnd)
		input := remap.Interval{Start: uint64(rnd.Intn(220)), Length: uint64(rnd.Intn(60) + 1)}

		got, err := stage.TranslateInterval(input)
		require.NoError(t, err)

		var total uint64

		// Pieces come out left to right, so the k-th value of input lands in the piece covering offset k.
		offset := input.Start
		for _, piece := range got {
			require.NotZero(t, piece.Length)

			for k := range piece.Length {
				assert.Equal(t, stage.TranslateValue(offset+k), piece.Start+k, "value %d of %s", offset+k, input)
			}

			offset += piece.Length
			total += piece.Length
		}

		assert.Equal(t, input.Length, total, "pieces of %s", input)
	}
}
