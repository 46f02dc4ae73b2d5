package store

import (
	"sync"

	"github.com/radius-admin/lineitem-console/internal/models"
)

// LineItemStore holds the single in-memory line item the console edits.
// Mutations are serialized and applied to a private copy, so a failed edit
// never leaves a partially-updated snapshot behind. The mutex doubles as the
// reentrancy guard the event-driven UI relies on.
type LineItemStore struct {
	mu   sync.Mutex
	item *models.LineItem
}

// NewLineItemStore seeds the store with an initial line item.
func NewLineItemStore(item *models.LineItem) *LineItemStore {
	return &LineItemStore{item: item.Clone()}
}

// Get returns an isolated snapshot of the current line item.
func (s *LineItemStore) Get() *models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item.Clone()
}

// Update applies fn to a working copy and swaps it in when fn succeeds. On
// error the stored snapshot is untouched. The returned snapshot is itself a
// copy, safe for the caller to hold across later mutations.
func (s *LineItemStore) Update(fn func(*models.LineItem) error) (*models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.item.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	s.item = draft
	return draft.Clone(), nil
}
