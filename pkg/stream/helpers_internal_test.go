package stream

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gate88/adventofcode2023/pkg/remap"
	"github.com/Gate88/adventofcode2023/pkg/stream/model"
)

var seeds = []uint64{79, 14, 55, 13, 98, 99, 50, 0, 1, 2}

// seedToSoil is the first table of the example almanac.
func seedToSoil(t *testing.T) *remap.Stage {
	t.Helper()

	first, err := remap.NewEntry(50, 98, 2)
	require.NoError(t, err)

	second, err := remap.NewEntry(52, 50, 48)
	require.NoError(t, err)

	stage, err := remap.NewStage("seed", "soil", first, second)
	require.NoError(t, err)

	return stage
}

// feed sends items on an unbuffered channel and closes it.
func feed[T any](t *testing.T, items []T) chan T {
	t.Helper()

	ch := make(chan T)

	go func() {
		defer close(ch)

		for _, item := range items {
			ch <- item
		}
	}()

	return ch
}

// feedThenCancel sends the first sent items, cancels and leaves the channel open,
// so readers can only stop through the context.
func feedThenCancel[T any](t *testing.T, items []T, sent int, cancel context.CancelFunc) chan T {
	t.Helper()

	ch := make(chan T)

	go func() {
		for _, item := range items[:min(sent, len(items))] {
			ch <- item
		}

		cancel()
	}()

	return ch
}

func drain[T any](t *testing.T, ch <-chan T) []T {
	t.Helper()

	res := []T{}
	for item := range ch {
		res = append(res, item)
	}

	return res
}

// eventLog records the events of a step and can be read once the step returned.
type eventLog struct {
	mu     sync.Mutex
	events []model.Event
}

func (l *eventLog) observe(event model.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)

	return nil
}

func (l *eventLog) emitted() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, event := range l.events {
		total += event.Emitted
	}

	return total
}
