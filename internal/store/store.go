package store

import (
	"sort"
	"sync"

	"github.com/hangarline/avwx-etl/internal/domain"
)

// Record is the latest enriched data held for one station. Either
// product may be absent if it has not been fetched yet.
type Record struct {
	Observation *domain.EnrichedObservation `json:"observation,omitempty"`
	Forecast    *domain.EnrichedForecast    `json:"forecast,omitempty"`
}

// Store keeps the most recent enriched record per station in memory
// with LRU eviction, serving the read API between update cycles.
type Store struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	station string
	record  Record
	prev    *entry
	next    *entry
}

// New creates a store holding at most maxEntries stations.
func New(maxEntries int) *Store {
	return &Store{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// PutObservation stores the latest observation for a station,
// preserving any forecast already held.
func (s *Store) PutObservation(obs domain.EnrichedObservation) {
	s.update(obs.StationID, func(r *Record) {
		r.Observation = &obs
	})
}

// PutForecast stores the latest forecast for a station.
func (s *Store) PutForecast(fc domain.EnrichedForecast) {
	s.update(fc.StationID, func(r *Record) {
		r.Forecast = &fc
	})
}

// Get returns the record for a station, if present.
func (s *Store) Get(station string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[station]
	if !ok {
		return Record{}, false
	}
	s.moveToFront(e)
	return e.record, true
}

// Stations returns the stations currently held, sorted for stable API
// output.
func (s *Store) Stations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.entries))
	for station := range s.entries {
		out = append(out, station)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of stations held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) update(station string, apply func(*Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[station]; ok {
		apply(&e.record)
		s.moveToFront(e)
		return
	}

	e := &entry{station: station}
	apply(&e.record)
	s.entries[station] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
}

func (s *Store) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *Store) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *Store) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *Store) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.station)
	s.remove(s.tail)
}
