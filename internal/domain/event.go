package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the state transition an event records.
type EventType string

const (
	EventCampaignCreated  EventType = "CAMPAIGN_CREATED"
	EventDonationReceived EventType = "DONATION_RECEIVED"
	EventCampaignEnded    EventType = "CAMPAIGN_ENDED"
)

// Event is an immutable record of a successful state transition, emitted for
// external observers only. Exactly one of the payload pointers is set,
// matching Type.
type Event struct {
	ID         uuid.UUID
	Type       EventType
	CampaignID int
	OccurredAt time.Time

	Created  *CampaignCreated
	Donation *DonationReceived
	Ended    *CampaignEnded
}

// CampaignCreated carries the inputs of a successful createCampaign call plus
// the computed deadline.
type CampaignCreated struct {
	Title       string
	Description string
	Beneficiary string
	Goal        int64
	Deadline    time.Time
}

// DonationReceived records a single accepted donation. Country is an
// optional ISO code resolved from the donor's address, empty when unknown.
type DonationReceived struct {
	Donor   string
	Amount  int64
	Country string
}

// CampaignEnded records the payout of a campaign's full balance.
type CampaignEnded struct {
	Beneficiary  string
	AmountRaised int64
}

// NewEvent builds an event envelope with a fresh id.
func NewEvent(t EventType, campaignID int, at time.Time) Event {
	return Event{ID: uuid.New(), Type: t, CampaignID: campaignID, OccurredAt: at}
}
