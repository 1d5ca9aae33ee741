package form

import (
	"context"
	"sync"
)

// Pick is one selection made on the page.
type Pick struct {
	Question int `json:"question"` // 0-based page position
	Option   int `json:"option"`   // 1-based
}

// RecordingSelector stores picks instead of driving a browser.
type RecordingSelector struct {
	mu    sync.Mutex
	picks []Pick
}

// Select implements Selector.
func (s *RecordingSelector) Select(_ context.Context, questionIdx int, option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picks = append(s.picks, Pick{Question: questionIdx, Option: option})
	return nil
}

// Picks returns a copy of the picks in selection order.
func (s *RecordingSelector) Picks() []Pick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Pick(nil), s.picks...)
}
