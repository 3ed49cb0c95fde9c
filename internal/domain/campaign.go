package domain

import "time"

// CampaignStatus tracks whether a campaign can still accept donations or has
// already paid out.
type CampaignStatus string

const (
	CampaignStatusOpen  CampaignStatus = "OPEN"
	CampaignStatusEnded CampaignStatus = "ENDED"
)

// Campaign is a single fundraising record. The ID is the campaign's ordinal
// position in the ledger, assigned at creation and never reused.
type Campaign struct {
	ID           int
	Title        string
	Description  string
	Beneficiary  string
	Goal         int64
	Deadline     time.Time
	AmountRaised int64
	Status       CampaignStatus
	CreatedAt    time.Time
}

// Open reports whether the campaign still accepts donations at the given
// instant. Donations close exactly at the deadline.
func (c Campaign) Open(now time.Time) bool {
	return c.Status == CampaignStatusOpen && now.Before(c.Deadline)
}

// Due reports whether the deadline has passed and payout is permitted.
func (c Campaign) Due(now time.Time) bool {
	return !now.Before(c.Deadline)
}
