package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/ledger"
	"server/internal/payout"
)

var errSettlement = errors.New("settlement offline")

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type testEnv struct {
	app     *App
	router  chi.Router
	clock   *fakeClock
	payer   *payout.MemoryPayer
	journal *ledger.MemoryJournal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	payer := payout.NewMemoryPayer()
	journal := ledger.NewMemoryJournal()
	lgr := ledger.New(clock, payer, journal, zerolog.Nop())
	app := NewApp(lgr, journal, payer, zerolog.Nop())

	r := chi.NewRouter()
	r.Post("/v1/campaigns", app.CampaignsCreate)
	r.Get("/v1/campaigns", app.CampaignsList)
	r.Get("/v1/campaigns/{id}", app.CampaignsGet)
	r.Post("/v1/campaigns/{id}/donations", app.DonationsCreate)
	r.Post("/v1/campaigns/{id}/end", app.CampaignsEnd)
	r.Get("/v1/events", app.EventsList)
	r.Get("/v1/accounts/{id}", app.AccountsGet)

	return &testEnv{app: app, router: r, clock: clock, payer: payer, journal: journal}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCampaignsCreate(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "POST", "/v1/campaigns",
		`{"title":"school roof","beneficiary":"acct-school","goal":100,"duration_seconds":1000}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201, body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		ID int `json:"id"`
	}
	decode(t, rr, &resp)
	if resp.ID != 0 {
		t.Fatalf("first campaign id: got %d want 0", resp.ID)
	}

	rr = env.do(t, "GET", "/v1/campaigns/0", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rr.Code)
	}
	var c campaignResponse
	decode(t, rr, &c)
	if c.Title != "school roof" || c.Goal != 100 || c.Status != "OPEN" || c.AmountRaised != 0 {
		t.Fatalf("unexpected campaign: %+v", c)
	}
	wantDeadline := env.clock.now.Add(1000 * time.Second)
	if !c.Deadline.Equal(wantDeadline) {
		t.Fatalf("deadline: got %v want %v", c.Deadline, wantDeadline)
	}
}

func TestCampaignsCreateRejectsBadGoal(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "POST", "/v1/campaigns",
		`{"title":"x","beneficiary":"acct","goal":0,"duration_seconds":60}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want 422", rr.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rr, &resp)
	if resp.Error != "invalid_goal" {
		t.Fatalf("error code: got %q want invalid_goal", resp.Error)
	}

	rr = env.do(t, "GET", "/v1/campaigns", "")
	var list struct {
		Items []campaignResponse `json:"items"`
	}
	decode(t, rr, &list)
	if len(list.Items) != 0 {
		t.Fatalf("rejected create must not append, have %d items", len(list.Items))
	}
}

func TestCampaignsCreateRejectsMissingFields(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"goal":100,"duration_seconds":60}`,                        // no beneficiary
		`{"beneficiary":"acct","goal":100}`,                         // no duration
		`{"beneficiary":"acct","goal":100,"duration_seconds":-10}`,  // negative duration
		`not json`,
	} {
		rr := env.do(t, "POST", "/v1/campaigns", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %q: got status %d want 400", body, rr.Code)
		}
	}
}

func TestDonationsCreate(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/v1/campaigns",
		`{"title":"x","beneficiary":"acct","goal":100,"duration_seconds":1000}`)

	rr := env.do(t, "POST", "/v1/campaigns/0/donations", `{"donor":"alice","amount":40}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		CampaignID   int   `json:"campaign_id"`
		Amount       int64 `json:"amount"`
		AmountRaised int64 `json:"amount_raised"`
	}
	decode(t, rr, &resp)
	if resp.AmountRaised != 40 {
		t.Fatalf("amount raised: got %d want 40", resp.AmountRaised)
	}
}

func TestDonationsCreateAfterDeadline(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/v1/campaigns",
		`{"title":"x","beneficiary":"acct","goal":100,"duration_seconds":1000}`)
	env.do(t, "POST", "/v1/campaigns/0/donations", `{"donor":"alice","amount":40}`)

	env.clock.now = env.clock.now.Add(1500 * time.Second)
	rr := env.do(t, "POST", "/v1/campaigns/0/donations", `{"donor":"bob","amount":70}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d want 409", rr.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rr, &resp)
	if resp.Error != "campaign_ended" {
		t.Fatalf("error code: got %q", resp.Error)
	}
}

func TestDonationsCreateUnknownCampaign(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, "POST", "/v1/campaigns/7/donations", `{"amount":10}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rr.Code)
	}
}

func TestCampaignsEndFlow(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/v1/campaigns",
		`{"title":"x","beneficiary":"acct-end","goal":100,"duration_seconds":1000}`)
	env.do(t, "POST", "/v1/campaigns/0/donations", `{"donor":"alice","amount":40}`)

	// Too early.
	rr := env.do(t, "POST", "/v1/campaigns/0/end", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("early end status: got %d want 409", rr.Code)
	}

	env.clock.now = env.clock.now.Add(1500 * time.Second)
	rr = env.do(t, "POST", "/v1/campaigns/0/end", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("end status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		ID           int    `json:"id"`
		Beneficiary  string `json:"beneficiary"`
		AmountRaised int64  `json:"amount_raised"`
	}
	decode(t, rr, &resp)
	if resp.Beneficiary != "acct-end" || resp.AmountRaised != 40 {
		t.Fatalf("unexpected end response: %+v", resp)
	}

	// Beneficiary account was credited.
	rr = env.do(t, "GET", "/v1/accounts/acct-end", "")
	var acct struct {
		Balance int64 `json:"balance"`
	}
	decode(t, rr, &acct)
	if acct.Balance != 40 {
		t.Fatalf("account balance: got %d want 40", acct.Balance)
	}

	// A second end call is rejected.
	rr = env.do(t, "POST", "/v1/campaigns/0/end", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("double end status: got %d want 409", rr.Code)
	}
	var errResp struct {
		Error string `json:"error"`
	}
	decode(t, rr, &errResp)
	if errResp.Error != "already_ended" {
		t.Fatalf("error code: got %q want already_ended", errResp.Error)
	}
}

func TestCampaignsEndTransferFailure(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/v1/campaigns",
		`{"title":"x","beneficiary":"acct","goal":100,"duration_seconds":10}`)
	env.clock.now = env.clock.now.Add(time.Minute)
	env.payer.FailWith(errSettlement)

	rr := env.do(t, "POST", "/v1/campaigns/0/end", "")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d want 502", rr.Code)
	}

	// Campaign stays open for a retry.
	var c campaignResponse
	decode(t, env.do(t, "GET", "/v1/campaigns/0", ""), &c)
	if c.Status != "OPEN" {
		t.Fatalf("status after failed transfer: got %s want OPEN", c.Status)
	}
}

func TestEventsList(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/v1/campaigns",
		`{"title":"x","beneficiary":"acct","goal":100,"duration_seconds":1000}`)
	env.do(t, "POST", "/v1/campaigns/0/donations", `{"donor":"alice","amount":40}`)

	rr := env.do(t, "GET", "/v1/events", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp struct {
		Items []eventResponse `json:"items"`
	}
	decode(t, rr, &resp)
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Items))
	}
	// Newest first.
	if resp.Items[0].Type != "DONATION_RECEIVED" || resp.Items[1].Type != "CAMPAIGN_CREATED" {
		t.Fatalf("unexpected event order: %s, %s", resp.Items[0].Type, resp.Items[1].Type)
	}
}
