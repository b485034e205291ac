package measure

import (
	"sync"
	"time"
)

// MemoryMeasure keeps metrics in memory. Steps may be tracked while earlier steps already report.
type MemoryMeasure struct {
	mu    sync.RWMutex
	steps map[string]*stepMetric
}

func NewMeasure() *MemoryMeasure {
	return &MemoryMeasure{steps: make(map[string]*stepMetric)}
}

func (m *MemoryMeasure) Track(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &stepMetric{
		concurrent: max(concurrent, 1),
		waits:      make(map[string]*waitTotal),
	}
	m.steps[name] = mt

	return mt
}

func (m *MemoryMeasure) Metric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mt, ok := m.steps[name]
	if !ok {
		return nil
	}

	return mt
}

func (m *MemoryMeasure) Metrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		res[name] = mt
	}

	return res
}

type waitTotal struct {
	sum   time.Duration
	count int64
}

type stepMetric struct {
	mu         sync.Mutex
	concurrent int
	count      int64
	emitted    int64
	work       time.Duration
	total      time.Duration
	waits      map[string]*waitTotal
}

func (mt *stepMetric) Observe(parent string, wait, work time.Duration, emitted int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.count++
	mt.emitted += int64(emitted)
	mt.work += work

	w, ok := mt.waits[parent]
	if !ok {
		w = &waitTotal{}
		mt.waits[parent] = w
	}

	w.sum += wait
	w.count++
}

func (mt *stepMetric) Count() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.count
}

func (mt *stepMetric) Emitted() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.emitted
}

func (mt *stepMetric) AvgWork() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.count == 0 {
		return 0
	}

	return round(mt.work / time.Duration(mt.count))
}

func (mt *stepMetric) AvgWait() map[string]time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	res := make(map[string]time.Duration, len(mt.waits))
	for parent, w := range mt.waits {
		res[parent] = round(w.sum / time.Duration(w.count*int64(mt.concurrent)))
	}

	return res
}

func (mt *stepMetric) SetTotal(total time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.total = total
}

func (mt *stepMetric) Total() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

// round keeps the most significant unit so labels stay short.
func round(d time.Duration) time.Duration {
	for _, unit := range []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond} {
		if d > unit {
			return d.Round(unit)
		}
	}

	return d
}

var _ Measure = (*MemoryMeasure)(nil)
