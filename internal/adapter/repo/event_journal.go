package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// EventJournalPG persists the notification stream in PostgreSQL. Each append
// also folds the event into the campaigns table inside the same transaction,
// so the snapshots used for restart recovery can never drift from the
// journal.
type EventJournalPG struct {
	pool *pgxpool.Pool
}

func NewEventJournal(pool *pgxpool.Pool) *EventJournalPG {
	return &EventJournalPG{pool: pool}
}

type eventPayload struct {
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	Beneficiary  string     `json:"beneficiary,omitempty"`
	Goal         int64      `json:"goal,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Donor        string     `json:"donor,omitempty"`
	Amount       *int64     `json:"amount,omitempty"`
	Country      string     `json:"country,omitempty"`
	AmountRaised *int64     `json:"amount_raised,omitempty"`
}

// Append writes the event row and applies its effect to the campaign
// snapshot in one transaction.
func (j *EventJournalPG) Append(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(marshalPayload(event))
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer tx.Rollback(ctx)

	run := infra.TxRunner{Tx: tx}
	if _, err := run.Exec(ctx, sqlinline.QInsertEvent,
		event.ID, string(event.Type), event.CampaignID, event.OccurredAt, payload); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	switch event.Type {
	case domain.EventCampaignCreated:
		c := event.Created
		if _, err := run.Exec(ctx, sqlinline.QInsertCampaign,
			event.CampaignID, c.Title, c.Description, c.Beneficiary, c.Goal, c.Deadline, event.OccurredAt); err != nil {
			return fmt.Errorf("insert campaign snapshot: %w", err)
		}
	case domain.EventDonationReceived:
		if _, err := run.Exec(ctx, sqlinline.QAddToCampaignRaised,
			event.CampaignID, event.Donation.Amount); err != nil {
			return fmt.Errorf("update campaign snapshot: %w", err)
		}
	case domain.EventCampaignEnded:
		if _, err := run.Exec(ctx, sqlinline.QMarkCampaignEnded, event.CampaignID); err != nil {
			return fmt.Errorf("mark campaign ended: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListRecent returns up to limit events, newest first.
func (j *EventJournalPG) ListRecent(ctx context.Context, limit int) ([]domain.Event, error) {
	rows, err := j.pool.Query(ctx, stripMarker(sqlinline.QListEvents), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			event   domain.Event
			kind    string
			raw     []byte
			eventID uuid.UUID
		)
		if err := rows.Scan(&eventID, &kind, &event.CampaignID, &event.OccurredAt, &raw); err != nil {
			return nil, err
		}
		event.ID = eventID
		event.Type = domain.EventType(kind)
		if err := unmarshalPayload(&event, raw); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func marshalPayload(event domain.Event) eventPayload {
	var p eventPayload
	switch event.Type {
	case domain.EventCampaignCreated:
		c := event.Created
		p.Title = c.Title
		p.Description = c.Description
		p.Beneficiary = c.Beneficiary
		p.Goal = c.Goal
		deadline := c.Deadline
		p.Deadline = &deadline
	case domain.EventDonationReceived:
		d := event.Donation
		p.Donor = d.Donor
		amount := d.Amount
		p.Amount = &amount
		p.Country = d.Country
	case domain.EventCampaignEnded:
		e := event.Ended
		p.Beneficiary = e.Beneficiary
		raised := e.AmountRaised
		p.AmountRaised = &raised
	}
	return p
}

func unmarshalPayload(event *domain.Event, raw []byte) error {
	var p eventPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("unmarshal event payload: %w", err)
	}
	switch event.Type {
	case domain.EventCampaignCreated:
		created := domain.CampaignCreated{
			Title:       p.Title,
			Description: p.Description,
			Beneficiary: p.Beneficiary,
			Goal:        p.Goal,
		}
		if p.Deadline != nil {
			created.Deadline = *p.Deadline
		}
		event.Created = &created
	case domain.EventDonationReceived:
		donation := domain.DonationReceived{Donor: p.Donor, Country: p.Country}
		if p.Amount != nil {
			donation.Amount = *p.Amount
		}
		event.Donation = &donation
	case domain.EventCampaignEnded:
		ended := domain.CampaignEnded{Beneficiary: p.Beneficiary}
		if p.AmountRaised != nil {
			ended.AmountRaised = *p.AmountRaised
		}
		event.Ended = &ended
	}
	return nil
}

var _ domain.EventJournal = (*EventJournalPG)(nil)
