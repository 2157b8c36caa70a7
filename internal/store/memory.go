package store

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemoryStore is a brute-force in-memory vector index using cosine distance.
// Unlike the SQLite backend it is safe for concurrent Add/Query: all access
// goes through an RWMutex. It is the default backend for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	ids     map[string]bool
}

// NewMemoryStore creates an empty in-memory index.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]bool)}
}

func (s *MemoryStore) Add(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if s.ids[r.ID] || seen[r.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = true
	}
	for _, r := range records {
		s.ids[r.ID] = true
		s.records = append(s.records, r)
	}
	return nil
}

func (s *MemoryStore) Query(embedding []float32, k int, filter *Filter) ([]RetrievedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		idx  int
		dist float64
	}
	var candidates []scored
	for i, r := range s.records {
		if filter != nil && !filter.Matches(r.Meta) {
			continue
		}
		candidates = append(candidates, scored{idx: i, dist: cosineDistance(embedding, r.Embedding)})
	}

	// Stable keeps insertion order on distance ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	results := make([]RetrievedRecord, 0, k)
	for _, c := range candidates[:k] {
		r := s.records[c.idx]
		dist := c.dist
		results = append(results, RetrievedRecord{
			Content:  r.Content,
			Meta:     r.Meta,
			Distance: &dist,
		})
	}
	return results, nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) TypeDistribution() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dist := make(map[string]int)
	for _, r := range s.records {
		dist[r.Meta.Type]++
	}
	return dist
}

func (s *MemoryStore) Close() error { return nil }

// cosineDistance returns 1 - cosine similarity; 0 is identical direction.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
