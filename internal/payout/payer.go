package payout

import (
	"context"
	"sync"

	"server/internal/domain"
)

// MemoryPayer credits beneficiary balances in an in-process map. It is the
// payout backend when no database is configured, and its failure switch lets
// tests exercise the abort path of campaign payouts.
type MemoryPayer struct {
	mu       sync.Mutex
	balances map[string]int64
	failWith error
}

func NewMemoryPayer() *MemoryPayer {
	return &MemoryPayer{balances: make(map[string]int64)}
}

// FailWith makes every subsequent Transfer return err. Pass nil to restore
// normal behavior.
func (p *MemoryPayer) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWith = err
}

func (p *MemoryPayer) Transfer(_ context.Context, _ int, beneficiary string, amount int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.balances[beneficiary] += amount
	return nil
}

func (p *MemoryPayer) Balance(_ context.Context, account string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balances[account], nil
}

var (
	_ domain.Payer             = (*MemoryPayer)(nil)
	_ domain.AccountRepository = (*MemoryPayer)(nil)
)
