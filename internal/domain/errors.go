package domain

import "errors"

var (
	ErrInvalidGoal          = errors.New("goal must be positive")
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrUnknownCampaign      = errors.New("unknown campaign")
	ErrCampaignEnded        = errors.New("campaign deadline has passed")
	ErrCampaignStillOngoing = errors.New("campaign deadline has not passed")
	ErrAlreadyEnded         = errors.New("campaign already ended")
	ErrTransferFailed       = errors.New("transfer to beneficiary failed")
)
