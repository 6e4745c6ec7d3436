package store

import (
	"sync"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// Messages holds the fetched message sequence. It is replaced wholesale on
// every load and never merged.
type Messages struct {
	mu   sync.RWMutex
	msgs []domain.Message
	byID map[string]int
}

// NewMessages returns an empty store.
func NewMessages() *Messages {
	return &Messages{byID: make(map[string]int)}
}

// Replace swaps in a new message sequence, keeping its order.
func (s *Messages) Replace(msgs []domain.Message) {
	cp := make([]domain.Message, len(msgs))
	copy(cp, msgs)
	idx := make(map[string]int, len(cp))
	for i := range cp {
		if _, dup := idx[cp[i].ID]; !dup {
			idx[cp[i].ID] = i
		}
	}

	s.mu.Lock()
	s.msgs = cp
	s.byID = idx
	s.mu.Unlock()
}

// All returns a copy of the stored messages in load order.
func (s *Messages) All() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Get looks up a message by ID. The first occurrence wins when IDs repeat.
func (s *Messages) Get(id string) (domain.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Message{}, false
	}
	return s.msgs[i], true
}

// Len returns the number of stored messages.
func (s *Messages) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.msgs)
}
