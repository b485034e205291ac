package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Gate88/adventofcode2023/internal/almanac"
	"github.com/Gate88/adventofcode2023/internal/config"
	"github.com/Gate88/adventofcode2023/internal/log"
	"github.com/Gate88/adventofcode2023/pkg/remap"
	"github.com/Gate88/adventofcode2023/pkg/stream"
	"github.com/Gate88/adventofcode2023/pkg/stream/drawer"
	"github.com/Gate88/adventofcode2023/pkg/stream/measure"
	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

var ErrNoIntervals = errors.New("range mode needs an even number of seeds")

func solveCmd() *cobra.Command {
	var (
		envFile     string
		mode        string
		start       string
		concurrency int
		streamMode  bool
		drawFile    string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "solve <almanac>",
		Short: "Walk the seeds of an almanac to the terminal stage and print the lowest result",
		Long: `Walk the seeds of an almanac to the terminal stage and print the lowest result.

part1 walks every seed as a single value. part2 reads the seeds as (start, length) pairs and walks
the intervals they describe.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  REMAP_LOG_LEVEL      Log level: trace, debug, info, warn, error (default: info)
  REMAP_LOG_FORMAT     Log format: console, json (default: console)
  REMAP_MODE           Walks to run: scalar, range, both (default: both)
  REMAP_START_STAGE    Start stage (default: source of the first table)
  REMAP_STREAM         Walk with one goroutine pool per stage (default: false)
  REMAP_CONCURRENCY    Goroutines per stage in stream mode (default: 1)
  REMAP_BUFFER_SIZE    Channel capacity between stages in stream mode (default: 0)
  REMAP_DRAW_FILE      DOT file drawn after a stream walk, suffixed with the part`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("mode") {
				cfg.Mode = config.Mode(strings.ToLower(mode))
			}
			if flags.Changed("start") {
				cfg.StartStage = start
			}
			if flags.Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if flags.Changed("stream") {
				cfg.Stream = streamMode
			}
			if flags.Changed("draw") {
				cfg.DrawFile = drawFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			s := &solver{
				cfg:    cfg,
				logger: log.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel),
				out:    cmd.OutOrStdout(),
			}

			return s.solve(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&mode, "mode", "", "Walks to run: scalar, range, both")
	cmd.Flags().StringVar(&start, "start", "", "Start stage")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Goroutines per stage in stream mode")
	cmd.Flags().BoolVar(&streamMode, "stream", false, "Walk with one goroutine pool per stage")
	cmd.Flags().StringVar(&drawFile, "draw", "", "Draw the stream pipeline to this DOT file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level")

	return cmd
}

type solver struct {
	cfg    config.Config
	logger zerolog.Logger
	out    io.Writer
}

func (s *solver) solve(ctx context.Context, path string) error {
	doc, err := almanac.Load(path)
	if err != nil {
		return err
	}

	if s.cfg.StartStage != "" {
		doc.Start = s.cfg.StartStage
	}

	pipe, err := doc.Pipeline(remap.WithLogger(s.logger))
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("start", pipe.Start()).
		Str("terminal", pipe.Terminal()).
		Int("depth", pipe.Depth()).
		Int("seeds", len(pipe.Values())).
		Bool("stream", s.cfg.Stream).
		Msg("loaded almanac")

	if s.cfg.Scalar() {
		if err := s.part1(ctx, pipe); err != nil {
			return errors.Wrap(err, "part1")
		}
	}

	if s.cfg.Range() {
		if len(pipe.Intervals()) == 0 {
			if s.cfg.Mode == config.ModeRange {
				return ErrNoIntervals
			}

			s.logger.Warn().Int("seeds", len(pipe.Values())).Msg("skipping part2, seeds do not form pairs")

			return nil
		}

		if err := s.part2(ctx, pipe); err != nil {
			return errors.Wrap(err, "part2")
		}
	}

	return nil
}

func (s *solver) part1(ctx context.Context, pipe *remap.Pipeline) error {
	var (
		res remap.ValueResult
		err error
	)

	if s.cfg.Stream {
		res, err = stream.RunValues(ctx, pipe, pipe.Values(), s.streamConfig("part1"))
		if err != nil {
			return err
		}
	} else {
		res = pipe.RunToTerminal()
	}

	lowest, err := res.Min()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "part1: %s = %d\n", res.Terminal, lowest)

	return nil
}

func (s *solver) part2(ctx context.Context, pipe *remap.Pipeline) error {
	var (
		res remap.RangeResult
		err error
	)

	if s.cfg.Stream {
		res, err = stream.RunIntervals(ctx, pipe, pipe.Intervals(), s.streamConfig("part2"))
	} else {
		res, err = pipe.RunRangesToTerminal()
	}

	if err != nil {
		return err
	}

	lowest, err := res.Min()
	if err != nil {
		return err
	}

	s.logger.Debug().Int("intervals", len(res.Intervals)).Msg("walked intervals")
	fmt.Fprintf(s.out, "part2: %s = %d\n", res.Terminal, lowest)

	return nil
}

func (s *solver) streamConfig(part string) stream.Config {
	cfg := stream.Config{
		Concurrency: s.cfg.Concurrency,
		BufferSize:  s.cfg.BufferSize,
	}

	if s.cfg.DrawFile != "" {
		msr := measure.NewMeasure()
		cfg.Options = []model.PipelineOption{
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(partFile(s.cfg.DrawFile, part)), msr),
		}
	}

	return cfg
}

// partFile inserts part before the extension of fileName: chain.dot becomes chain-part1.dot.
func partFile(fileName, part string) string {
	ext := filepath.Ext(fileName)

	return strings.TrimSuffix(fileName, ext) + "-" + part + ext
}
