package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Submission is one accepted form post.
type Submission struct {
	ID         string         `json:"id"`
	Record     string         `json:"record"`
	Values     map[string]any `json:"values"`
	ReceivedAt time.Time      `json:"received_at"`
}

// Store keeps accepted submissions in memory for the lifetime of the process.
type Store struct {
	mu    sync.RWMutex
	items []Submission
	now   func() time.Time
	newID func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Add records values against record and returns the stored submission.
func (s *Store) Add(record string, values map[string]any) Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := Submission{
		ID:         s.newID(),
		Record:     record,
		Values:     values,
		ReceivedAt: s.now().UTC(),
	}
	s.items = append(s.items, sub)
	return sub
}

// List returns the submissions for record in arrival order.
func (s *Store) List(record string) []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Submission, 0)
	for _, sub := range s.items {
		if sub.Record == record {
			out = append(out, sub)
		}
	}
	return out
}

// Get looks a submission up by id.
func (s *Store) Get(id string) (Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.items {
		if sub.ID == id {
			return sub, true
		}
	}
	return Submission{}, false
}
