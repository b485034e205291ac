package remap

import (
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Gate88/adventofcode2023/internal/store"
)

// StageSpec describes a stage as a parser hands it over.
// Entries are (destination start, source start, length) triples in any order.
type StageSpec struct {
	Name    string
	Next    string
	Entries [][3]uint64
}

// Hop describes one stage transition of a walk.
type Hop struct {
	From  string
	To    string
	Items int
}

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithValues sets the initial scalar queries.
func WithValues(values ...uint64) Option {
	return func(p *Pipeline) {
		p.values = append(p.values, values...)
	}
}

// WithIntervals sets the initial interval queries.
func WithIntervals(intervals ...Interval) Option {
	return func(p *Pipeline) {
		p.intervals = append(p.intervals, intervals...)
	}
}

// WithLogger logs every stage transition at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithHopObserver calls fn after every stage transition.
func WithHopObserver(fn func(Hop)) Option {
	return func(p *Pipeline) {
		p.onHop = fn
	}
}

// Pipeline is a validated chain of stages plus the queries to walk through it.
type Pipeline struct {
	logger    zerolog.Logger
	onHop     func(Hop)
	stages    map[string]*Stage
	start     string
	chain     []string
	values    []uint64
	intervals []Interval
}

// New builds every stage from specs and checks that the chain starting at start is well formed.
func New(start string, specs []StageSpec, opts ...Option) (*Pipeline, error) {
	pipe := &Pipeline{
		logger: zerolog.Nop(),
		stages: make(map[string]*Stage, len(specs)),
		start:  start,
	}

	for _, opt := range opts {
		opt(pipe)
	}

	for _, spec := range specs {
		stage, err := buildStage(spec)
		if err != nil {
			return nil, errors.Wrap(err, "unable to build stage")
		}

		if _, ok := pipe.stages[stage.Name()]; ok {
			return nil, errors.Wrapf(ErrDuplicateStage, "stage %s", stage.Name())
		}

		pipe.stages[stage.Name()] = stage
	}

	chain, err := pipe.link()
	if err != nil {
		return nil, errors.Wrap(err, "unable to link stages")
	}

	pipe.chain = chain

	return pipe, nil
}

func buildStage(spec StageSpec) (*Stage, error) {
	entries := make([]Entry, 0, len(spec.Entries))

	for i, triple := range spec.Entries {
		entry, err := NewEntry(triple[0], triple[1], triple[2])
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s: entry %d", spec.Name, i)
		}

		entries = append(entries, entry)
	}

	return NewStage(spec.Name, spec.Next, entries...)
}

// link loads the stages into a graph that refuses cycles and returns the chain from the start stage.
func (p *Pipeline) link() ([]string, error) {
	chainStore := store.NewChainStore[string, string]()
	gra := graph.NewWithStore(graph.StringHash, chainStore, graph.Directed(), graph.PreventCycles())

	names := make([]string, 0, len(p.stages))
	for name := range p.stages {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		err := gra.AddVertex(name)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add stage %s", name)
		}
	}

	for _, name := range names {
		next, ok := p.stages[name].Next()
		if !ok {
			continue
		}

		if _, ok := p.stages[next]; !ok {
			return nil, errors.Wrapf(ErrUnknownStage, "stage %s points to %s", name, next)
		}

		err := gra.AddEdge(name, next)
		if errors.Is(err, graph.ErrEdgeCreatesCycle) {
			return nil, errors.Wrapf(ErrCyclicChain, "stage %s points back to %s", name, next)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "unable to link %s to %s", name, next)
		}
	}

	if _, ok := p.stages[p.start]; !ok {
		return nil, errors.Wrapf(ErrUnknownStage, "start stage %q", p.start)
	}

	chain, err := chainStore.Chain(p.start)
	if err != nil {
		return nil, errors.Wrapf(ErrCyclicChain, "from %s: %v", p.start, err)
	}

	return chain, nil
}

// Start returns the name of the first stage.
func (p *Pipeline) Start() string {
	return p.start
}

// Stage returns the stage called name.
func (p *Pipeline) Stage(name string) (*Stage, bool) {
	stage, ok := p.stages[name]

	return stage, ok
}

// Chain returns the stage names from the start stage to the terminal stage.
func (p *Pipeline) Chain() []string {
	res := make([]string, len(p.chain))
	copy(res, p.chain)

	return res
}

// Depth returns the number of transitions a walk performs.
func (p *Pipeline) Depth() int {
	return len(p.chain) - 1
}

// Terminal returns the name of the last stage of the chain.
func (p *Pipeline) Terminal() string {
	return p.chain[len(p.chain)-1]
}

// Values returns the initial scalar queries.
func (p *Pipeline) Values() []uint64 {
	res := make([]uint64, len(p.values))
	copy(res, p.values)

	return res
}

// Intervals returns the initial interval queries.
func (p *Pipeline) Intervals() []Interval {
	res := make([]Interval, len(p.intervals))
	copy(res, p.intervals)

	return res
}
