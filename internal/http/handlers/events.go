package handlers

import (
	"net/http"
	"strconv"
	"time"

	"server/internal/domain"
)

const defaultEventLimit = 50

type eventResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CampaignID int       `json:"campaign_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (a *App) EventsList(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := a.Journal.ListRecent(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list events failed")
		a.error(w, r, http.StatusInternalServerError, "internal")
		return
	}

	items := make([]eventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, eventResponse{
			ID:         e.ID.String(),
			Type:       string(e.Type),
			CampaignID: e.CampaignID,
			OccurredAt: e.OccurredAt,
			Payload:    eventPayload(e),
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func eventPayload(e domain.Event) any {
	switch e.Type {
	case domain.EventCampaignCreated:
		if e.Created == nil {
			return nil
		}
		return map[string]any{
			"title":       e.Created.Title,
			"description": e.Created.Description,
			"beneficiary": e.Created.Beneficiary,
			"goal":        e.Created.Goal,
			"deadline":    e.Created.Deadline,
		}
	case domain.EventDonationReceived:
		if e.Donation == nil {
			return nil
		}
		payload := map[string]any{
			"donor":  e.Donation.Donor,
			"amount": e.Donation.Amount,
		}
		if e.Donation.Country != "" {
			payload["country"] = e.Donation.Country
		}
		return payload
	case domain.EventCampaignEnded:
		if e.Ended == nil {
			return nil
		}
		return map[string]any{
			"beneficiary":   e.Ended.Beneficiary,
			"amount_raised": e.Ended.AmountRaised,
		}
	}
	return nil
}
