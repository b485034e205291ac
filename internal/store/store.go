// Package store provides a graph.Store for stage chains, where every vertex has at most one successor.
package store

import (
	"fmt"
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

var ErrBranchingChain = errors.New("vertex already has a successor")

// ChainStore keeps vertices linked by single outgoing edges.
//
// Because a vertex has one successor at most, cycle checks and chain walks follow a single path instead of a
// traversal over all edges.
type ChainStore[K comparable, T any] struct {
	lock       sync.RWMutex
	vertices   map[K]T
	properties map[K]*graph.VertexProperties

	next map[K]graph.Edge[K]       // source -> edge to its only target
	prev map[K]map[K]graph.Edge[K] // target -> source -> edge
}

// NewChainStore creates an empty store.
func NewChainStore[K comparable, T any]() *ChainStore[K, T] {
	return &ChainStore[K, T]{
		vertices:   make(map[K]T),
		properties: make(map[K]*graph.VertexProperties),
		next:       make(map[K]graph.Edge[K]),
		prev:       make(map[K]map[K]graph.Edge[K]),
	}
}

func (s *ChainStore[K, T]) AddVertex(k K, t T, p graph.VertexProperties) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.vertices[k]; ok {
		return graph.ErrVertexAlreadyExists
	}

	s.vertices[k] = t
	s.properties[k] = &p

	return nil
}

func (s *ChainStore[K, T]) ListVertices() ([]K, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	hashes := make([]K, 0, len(s.vertices))
	for k := range s.vertices {
		hashes = append(hashes, k)
	}

	return hashes, nil
}

func (s *ChainStore[K, T]) VertexCount() (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.vertices), nil
}

func (s *ChainStore[K, T]) Vertex(k K) (T, graph.VertexProperties, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.vertices[k]
	if !ok {
		return v, graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return v, *s.properties[k], nil
}

func (s *ChainStore[K, T]) RemoveVertex(k K) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.vertices[k]; !ok {
		return graph.ErrVertexNotFound
	}

	if _, ok := s.next[k]; ok {
		return graph.ErrVertexHasEdges
	}

	if len(s.prev[k]) > 0 {
		return graph.ErrVertexHasEdges
	}

	delete(s.prev, k)
	delete(s.vertices, k)
	delete(s.properties, k)

	return nil
}

// AddEdge links source to target. A source that already has a different successor is rejected.
func (s *ChainStore[K, T]) AddEdge(sourceHash, targetHash K, edge graph.Edge[K]) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if existing, ok := s.next[sourceHash]; ok && existing.Target != targetHash {
		return errors.Wrapf(ErrBranchingChain, "%v already links to %v", sourceHash, existing.Target)
	}

	s.next[sourceHash] = edge

	if _, ok := s.prev[targetHash]; !ok {
		s.prev[targetHash] = make(map[K]graph.Edge[K])
	}

	s.prev[targetHash][sourceHash] = edge

	return nil
}

func (s *ChainStore[K, T]) UpdateEdge(sourceHash, targetHash K, edge graph.Edge[K]) error {
	if _, err := s.Edge(sourceHash, targetHash); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.next[sourceHash] = edge
	s.prev[targetHash][sourceHash] = edge

	return nil
}

func (s *ChainStore[K, T]) RemoveEdge(sourceHash, targetHash K) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if edge, ok := s.next[sourceHash]; ok && edge.Target == targetHash {
		delete(s.next, sourceHash)
	}

	delete(s.prev[targetHash], sourceHash)

	return nil
}

func (s *ChainStore[K, T]) Edge(sourceHash, targetHash K) (graph.Edge[K], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	edge, ok := s.next[sourceHash]
	if !ok || edge.Target != targetHash {
		return graph.Edge[K]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

func (s *ChainStore[K, T]) ListEdges() ([]graph.Edge[K], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res := make([]graph.Edge[K], 0, len(s.next))
	for _, edge := range s.next {
		res = append(res, edge)
	}

	return res, nil
}

func (s *ChainStore[K, T]) EdgeCount() (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.next), nil
}

// Successor returns the vertex that k links to.
func (s *ChainStore[K, T]) Successor(k K) (K, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	edge, ok := s.next[k]

	return edge.Target, ok
}

// CreatesCycle is picked up by graph.PreventCycles in place of the generic DFS.
// Adding source -> target closes a cycle exactly when source is reachable from target, and with single successors
// that reachability check is a walk along one path.
func (s *ChainStore[K, T]) CreatesCycle(source, target K) (bool, error) {
	if _, _, err := s.Vertex(source); err != nil {
		return false, fmt.Errorf("could not get vertex with hash %v: %w", source, err)
	}

	if _, _, err := s.Vertex(target); err != nil {
		return false, fmt.Errorf("could not get vertex with hash %v: %w", target, err)
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	visited := make(map[K]struct{})

	for current := target; ; {
		if current == source {
			return true, nil
		}

		if _, ok := visited[current]; ok {
			return false, nil
		}

		visited[current] = struct{}{}

		edge, ok := s.next[current]
		if !ok {
			return false, nil
		}

		current = edge.Target
	}
}

// Chain follows successors from start and returns every vertex on the way, start and the last vertex included.
func (s *ChainStore[K, T]) Chain(start K) ([]K, error) {
	if _, _, err := s.Vertex(start); err != nil {
		return nil, fmt.Errorf("could not get vertex with hash %v: %w", start, err)
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	visited := map[K]struct{}{start: {}}
	res := []K{start}

	for current := start; ; {
		edge, ok := s.next[current]
		if !ok {
			return res, nil
		}

		current = edge.Target
		if _, ok := visited[current]; ok {
			return nil, fmt.Errorf("vertex %v visited twice: %w", current, graph.ErrEdgeCreatesCycle)
		}

		visited[current] = struct{}{}
		res = append(res, current)
	}
}

var _ graph.Store[string, string] = (*ChainStore[string, string])(nil)
