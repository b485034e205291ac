package stream

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("pipeline must be set")
	ErrInputMustBeSet    = errors.New("input must be set")
)

// stepResult is closed by its step once the step returns, after sending at most one error.
type stepResult struct {
	name string
	errC <-chan error
}

type stepResults struct {
	mu      sync.Mutex
	results []stepResult
}

func (s *stepResults) track(name string, errC <-chan error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, stepResult{name: name, errC: errC})
}

func (s *stepResults) snapshot() []stepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]stepResult, len(s.results))
	copy(res, s.results)

	return res
}

// fanIn forwards the errors of every step, prefixed with the step name. The returned channel is closed once every
// step has returned. It holds one slot per step so forwarding never blocks, even when nobody reads anymore.
func fanIn(results []stepResult) <-chan error {
	out := make(chan error, len(results))

	var wg sync.WaitGroup
	wg.Add(len(results))

	for _, res := range results {
		go func() {
			defer wg.Done()

			if res.errC == nil {
				return
			}

			for err := range res.errC {
				out <- errors.Wrap(err, res.name)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// firstError waits for every step and returns the first error, without waiting for the others.
func firstError(results []stepResult) error {
	for err := range fanIn(results) {
		if err != nil {
			return err
		}
	}

	return nil
}
