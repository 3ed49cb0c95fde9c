package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Ledger is an append-only store of campaign records with three guarded
// state transitions: create, donate, end. A single mutex serializes all
// operations so each one is indivisible to concurrent callers; campaigns are
// never removed or reordered, and a campaign's id is its position in the
// list.
type Ledger struct {
	mu        sync.Mutex
	campaigns []domain.Campaign

	clock  Clock
	payer  domain.Payer
	sink   domain.EventSink
	logger zerolog.Logger
}

// CreateParams are the inputs for CreateCampaign. Duration is relative to
// the clock's current instant.
type CreateParams struct {
	Title       string
	Description string
	Beneficiary string
	Goal        int64
	Duration    time.Duration
}

// New builds a ledger around the injected capabilities. All three are
// required; use MemoryPayer and MemoryJournal from the payout and ledger
// packages when no external backends exist.
func New(clock Clock, payer domain.Payer, sink domain.EventSink, logger zerolog.Logger) *Ledger {
	return &Ledger{
		clock:  clock,
		payer:  payer,
		sink:   sink,
		logger: logger,
	}
}

// CreateCampaign appends a new open campaign and returns its ordinal id,
// which equals the record count before insertion. The goal must be positive.
func (l *Ledger) CreateCampaign(ctx context.Context, p CreateParams) (int, error) {
	if p.Goal <= 0 {
		return 0, domain.ErrInvalidGoal
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	c := domain.Campaign{
		ID:          len(l.campaigns),
		Title:       p.Title,
		Description: p.Description,
		Beneficiary: p.Beneficiary,
		Goal:        p.Goal,
		Deadline:    now.Add(p.Duration),
		Status:      domain.CampaignStatusOpen,
		CreatedAt:   now,
	}
	l.campaigns = append(l.campaigns, c)

	event := domain.NewEvent(domain.EventCampaignCreated, c.ID, now)
	event.Created = &domain.CampaignCreated{
		Title:       c.Title,
		Description: c.Description,
		Beneficiary: c.Beneficiary,
		Goal:        c.Goal,
		Deadline:    c.Deadline,
	}
	l.emit(ctx, event)

	l.logger.Info().Int("campaign_id", c.ID).Int64("goal", c.Goal).
		Time("deadline", c.Deadline).Msg("campaign created")
	return c.ID, nil
}

// Donate adds amount to the campaign's running total. Donations are accepted
// strictly before the deadline; zero amounts are allowed, negative ones are
// not. Country is an optional ISO code recorded on the emitted event.
func (l *Ledger) Donate(ctx context.Context, campaignID int, donor string, amount int64, country string) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.lookup(campaignID)
	if err != nil {
		return err
	}
	now := l.clock.Now()
	if !c.Open(now) {
		return domain.ErrCampaignEnded
	}

	c.AmountRaised += amount

	event := domain.NewEvent(domain.EventDonationReceived, campaignID, now)
	event.Donation = &domain.DonationReceived{Donor: donor, Amount: amount, Country: country}
	l.emit(ctx, event)

	l.logger.Info().Int("campaign_id", campaignID).Int64("amount", amount).
		Int64("raised", c.AmountRaised).Msg("donation received")
	return nil
}

// End pays the campaign's full balance to its beneficiary and marks it
// ended. It is rejected before the deadline and on a second call. A payer
// failure aborts the whole operation: the campaign stays open and no event
// is emitted. Returns the amount transferred.
func (l *Ledger) End(ctx context.Context, campaignID int) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.lookup(campaignID)
	if err != nil {
		return 0, err
	}
	now := l.clock.Now()
	if !c.Due(now) {
		return 0, domain.ErrCampaignStillOngoing
	}
	if c.Status == domain.CampaignStatusEnded {
		return 0, domain.ErrAlreadyEnded
	}

	if err := l.payer.Transfer(ctx, c.ID, c.Beneficiary, c.AmountRaised); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	c.Status = domain.CampaignStatusEnded

	event := domain.NewEvent(domain.EventCampaignEnded, campaignID, now)
	event.Ended = &domain.CampaignEnded{Beneficiary: c.Beneficiary, AmountRaised: c.AmountRaised}
	l.emit(ctx, event)

	l.logger.Info().Int("campaign_id", campaignID).Str("beneficiary", c.Beneficiary).
		Int64("amount", c.AmountRaised).Msg("campaign ended")
	return c.AmountRaised, nil
}

// Campaign returns a copy of the record with the given id.
func (l *Ledger) Campaign(campaignID int) (domain.Campaign, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.lookup(campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	return *c, nil
}

// List returns a copy of every campaign in creation order.
func (l *Ledger) List() []domain.Campaign {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Campaign, len(l.campaigns))
	copy(out, l.campaigns)
	return out
}

// Len returns the number of campaigns ever created.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.campaigns)
}

// DueCampaigns returns the ids of open campaigns whose deadline has passed.
func (l *Ledger) DueCampaigns() []int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	var due []int
	for i := range l.campaigns {
		c := &l.campaigns[i]
		if c.Status == domain.CampaignStatusOpen && c.Due(now) {
			due = append(due, c.ID)
		}
	}
	return due
}

// Restore replaces the ledger's contents with previously persisted
// snapshots. Records must arrive in creation order with contiguous ids
// starting at zero; it is intended for startup, before the ledger serves
// traffic.
func (l *Ledger) Restore(campaigns []domain.Campaign) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, c := range campaigns {
		if c.ID != i {
			return fmt.Errorf("snapshot out of order: position %d holds campaign %d", i, c.ID)
		}
	}
	l.campaigns = append([]domain.Campaign(nil), campaigns...)
	return nil
}

func (l *Ledger) lookup(campaignID int) (*domain.Campaign, error) {
	if campaignID < 0 || campaignID >= len(l.campaigns) {
		return nil, domain.ErrUnknownCampaign
	}
	return &l.campaigns[campaignID], nil
}

func (l *Ledger) emit(ctx context.Context, event domain.Event) {
	if l.sink == nil {
		return
	}
	if err := l.sink.Append(ctx, event); err != nil {
		l.logger.Error().Err(err).Str("event", string(event.Type)).
			Int("campaign_id", event.CampaignID).Msg("event sink append failed")
	}
}
