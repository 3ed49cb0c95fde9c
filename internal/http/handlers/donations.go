package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/middleware"
)

type donationRequest struct {
	Donor  string `json:"donor"`
	Amount int64  `json:"amount"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		a.error(w, r, http.StatusNotFound, "unknown_campaign")
		return
	}

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}

	donor := req.Donor
	if donor == "" {
		donor = r.Header.Get("X-Donor")
	}
	if donor == "" {
		donor = middleware.ClientIP(r)
	}
	country := middleware.CountryFromContext(r.Context())

	if err := a.Ledger.Donate(r.Context(), id, donor, req.Amount, country); err != nil {
		status, code := mapError(err)
		a.error(w, r, status, code)
		return
	}

	c, err := a.Ledger.Campaign(id)
	if err != nil {
		status, code := mapError(err)
		a.error(w, r, status, code)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"campaign_id":   id,
		"amount":        req.Amount,
		"amount_raised": c.AmountRaised,
	})
}
