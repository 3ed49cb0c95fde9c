package ledger

import (
	"context"
	"sync"

	"server/internal/domain"
)

// MemoryJournal keeps emitted events in memory. It backs the events endpoint
// when no database is configured and doubles as a recorder in tests.
type MemoryJournal struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (j *MemoryJournal) Append(_ context.Context, event domain.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, event)
	return nil
}

// ListRecent returns up to limit events, newest first.
func (j *MemoryJournal) ListRecent(_ context.Context, limit int) ([]domain.Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	n := len(j.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Event, 0, n)
	for i := len(j.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.events[i])
	}
	return out, nil
}

var _ domain.EventJournal = (*MemoryJournal)(nil)
