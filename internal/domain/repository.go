package domain

import "context"

// Payer moves raised funds to a beneficiary. A returned error aborts the
// enclosing ledger operation; implementations must not partially apply a
// transfer.
type Payer interface {
	Transfer(ctx context.Context, campaignID int, beneficiary string, amount int64) error
}

// EventSink receives notifications of successful state transitions. Delivery
// is fire-and-forget from the ledger's point of view: a sink error is logged
// by the caller but never rolls back the transition that produced the event.
type EventSink interface {
	Append(ctx context.Context, event Event) error
}

// EventJournal is an EventSink whose history can be read back.
type EventJournal interface {
	EventSink
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// CampaignSnapshots persists campaign records so the ledger can be restored
// after a restart.
type CampaignSnapshots interface {
	ListAll(ctx context.Context) ([]Campaign, error)
}

// AccountRepository reads beneficiary balances.
type AccountRepository interface {
	Balance(ctx context.Context, account string) (int64, error)
}
