package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/ledger"
)

type createCampaignRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Beneficiary     string `json:"beneficiary"`
	Goal            int64  `json:"goal"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type campaignResponse struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Beneficiary  string    `json:"beneficiary"`
	Goal         int64     `json:"goal"`
	Deadline     time.Time `json:"deadline"`
	AmountRaised int64     `json:"amount_raised"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func toCampaignResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Beneficiary:  c.Beneficiary,
		Goal:         c.Goal,
		Deadline:     c.Deadline,
		AmountRaised: c.AmountRaised,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
	}
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}
	if req.Beneficiary == "" || req.DurationSeconds <= 0 {
		a.error(w, r, http.StatusBadRequest, "bad_request")
		return
	}

	id, err := a.Ledger.CreateCampaign(r.Context(), ledger.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Beneficiary: req.Beneficiary,
		Goal:        req.Goal,
		Duration:    time.Duration(req.DurationSeconds) * time.Second,
	})
	if err != nil {
		status, code := mapError(err)
		a.error(w, r, status, code)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": id})
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns := a.Ledger.List()
	items := make([]campaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, toCampaignResponse(c))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		a.error(w, r, http.StatusNotFound, "unknown_campaign")
		return
	}
	c, err := a.Ledger.Campaign(id)
	if err != nil {
		status, code := mapError(err)
		a.error(w, r, status, code)
		return
	}
	a.json(w, http.StatusOK, toCampaignResponse(c))
}

func (a *App) CampaignsEnd(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		a.error(w, r, http.StatusNotFound, "unknown_campaign")
		return
	}
	amount, err := a.Ledger.End(r.Context(), id)
	if err != nil {
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
	a.json(w, http.StatusOK, map[string]any{
		"id":            id,
		"beneficiary":   c.Beneficiary,
		"amount_raised": amount,
	})
}

func campaignID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
