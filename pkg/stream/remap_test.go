package stream_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gate88/adventofcode2023/pkg/remap"
	"github.com/Gate88/adventofcode2023/pkg/stream"
	"github.com/Gate88/adventofcode2023/pkg/stream/drawer"
	"github.com/Gate88/adventofcode2023/pkg/stream/measure"
	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

func examplePipeline(t *testing.T) *remap.Pipeline {
	t.Helper()

	pipe, err := remap.New("seed", []remap.StageSpec{
		{Name: "seed", Next: "soil", Entries: [][3]uint64{{50, 98, 2}, {52, 50, 48}}},
		{Name: "soil", Next: "fertilizer", Entries: [][3]uint64{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}}},
		{Name: "fertilizer", Next: "water", Entries: [][3]uint64{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}}},
		{Name: "water", Next: "light", Entries: [][3]uint64{{88, 18, 7}, {18, 25, 70}}},
		{Name: "light", Next: "temperature", Entries: [][3]uint64{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}}},
		{Name: "temperature", Next: "humidity", Entries: [][3]uint64{{0, 69, 1}, {1, 0, 69}}},
		{Name: "humidity", Next: "location", Entries: [][3]uint64{{60, 56, 37}, {56, 93, 4}}},
		{Name: "location"},
	})
	require.NoError(t, err)

	return pipe
}

var configCases = map[string]stream.Config{
	"sequential":          {Concurrency: 1},
	"concurrent":          {Concurrency: 4},
	"buffered":            {Concurrency: 1, BufferSize: 8},
	"concurrent buffered": {Concurrency: 3, BufferSize: 2},
}

func TestRunValues(t *testing.T) {
	t.Parallel()

	pipe := examplePipeline(t)

	for name, cfg := range configCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := stream.RunValues(t.Context(), pipe, []uint64{79, 14, 55, 13}, cfg)
			require.NoError(t, err)
			assert.Equal(t, "location", res.Terminal)
			assert.ElementsMatch(t, []uint64{82, 43, 86, 35}, res.Values)

			lowest, err := res.Min()
			require.NoError(t, err)
			assert.Equal(t, uint64(35), lowest)
		})
	}
}

func TestRunIntervals(t *testing.T) {
	t.Parallel()

	pipe := examplePipeline(t)
	queries := []remap.Interval{{Start: 79, Length: 14}, {Start: 55, Length: 13}}

	want, terminal, err := pipe.RunIntervals(queries)
	require.NoError(t, err)

	for name, cfg := range configCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := stream.RunIntervals(t.Context(), pipe, queries, cfg)
			require.NoError(t, err)
			assert.Equal(t, terminal, res.Terminal)
			assert.ElementsMatch(t, want, res.Intervals)

			lowest, err := res.Min()
			require.NoError(t, err)
			assert.Equal(t, uint64(46), lowest)
		})
	}
}

func TestRunIntervalsZeroLength(t *testing.T) {
	t.Parallel()

	_, err := stream.RunIntervals(t.Context(), examplePipeline(t), []remap.Interval{{Start: 3}}, stream.Config{})
	require.ErrorIs(t, err, remap.ErrZeroLength)
}

func TestRunNilPipeline(t *testing.T) {
	t.Parallel()

	_, err := stream.RunValues(t.Context(), nil, []uint64{1}, stream.Config{})
	require.ErrorIs(t, err, stream.ErrPipelineMustBeSet)
}

func TestRunValuesTerminalStart(t *testing.T) {
	t.Parallel()

	pipe, err := remap.New("location", []remap.StageSpec{{Name: "location"}})
	require.NoError(t, err)

	res, err := stream.RunValues(t.Context(), pipe, []uint64{7, 3}, stream.Config{})
	require.NoError(t, err)
	assert.Equal(t, "location", res.Terminal)
	assert.ElementsMatch(t, []uint64{7, 3}, res.Values)
}

func TestRunValuesWithMeasureAndDrawer(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "chain.dot")
	msr := measure.NewMeasure()
	cfg := stream.Config{
		Concurrency: 2,
		Options: []model.PipelineOption{
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(fileName), msr),
		},
	}

	_, err := stream.RunValues(t.Context(), examplePipeline(t), []uint64{79, 14, 55, 13}, cfg)
	require.NoError(t, err)

	metric := msr.Metric(stream.StepName("seed", "soil"))
	require.NotNil(t, metric)
	assert.Equal(t, int64(4), metric.Count())

	sink := msr.Metric("location")
	require.NotNil(t, sink)
	assert.Equal(t, int64(4), sink.Count())
	assert.NotZero(t, sink.Total())

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)

	dot := string(content)
	assert.Contains(t, dot, "strict digraph")
	assert.Contains(t, dot, `"<start>" -> "<input>"`)
	assert.Contains(t, dot, `"<input>" -> "seed-to-soil"`)
	assert.Contains(t, dot, `"humidity-to-location" -> "location"`)
	assert.Contains(t, dot, `"location" -> "<end>"`)
}

func TestRunValuesTerminalNamedLikeRunnerStep(t *testing.T) {
	t.Parallel()

	for _, terminal := range []string{"start", "end", "input", "<start>", "<end>", "<input>"} {
		t.Run(terminal, func(t *testing.T) {
			t.Parallel()

			pipe, err := remap.New("seed", []remap.StageSpec{
				{Name: "seed", Next: terminal, Entries: [][3]uint64{{50, 98, 2}}},
				{Name: terminal},
			})
			require.NoError(t, err)

			fileName := filepath.Join(t.TempDir(), "chain.dot")
			msr := measure.NewMeasure()
			cfg := stream.Config{
				Concurrency: 2,
				Options: []model.PipelineOption{
					measure.PipelineMeasure(msr),
					drawer.PipelineDrawer(drawer.NewDOTDrawer(fileName), msr),
				},
			}

			res, err := stream.RunValues(t.Context(), pipe, []uint64{98, 5}, cfg)
			require.NoError(t, err)
			assert.Equal(t, terminal, res.Terminal)
			assert.ElementsMatch(t, []uint64{50, 5}, res.Values)

			// start, end, root, one transition and the sink
			assert.Len(t, msr.Metrics(), 5)
			assert.Equal(t, int64(2), msr.Metric(stream.StepName("seed", terminal)).Count())

			for name, metric := range msr.Metrics() {
				switch name {
				case model.Start.Name, model.End.Name, stream.RootStepName, stream.StepName("seed", terminal):
				default:
					assert.Equal(t, int64(2), metric.Count(), "sink %s", name)
					assert.NotZero(t, metric.Total(), "sink %s", name)
				}
			}

			content, err := os.ReadFile(fileName)
			require.NoError(t, err)
			assert.Contains(t, string(content), "strict digraph")
		})
	}
}
