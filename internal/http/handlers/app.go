package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/ledger"
)

// App bundles the dependencies the HTTP layer needs. The ledger is the
// authoritative state; journal and accounts back the read-only side
// channels.
type App struct {
	Ledger   *ledger.Ledger
	Journal  domain.EventJournal
	Accounts domain.AccountRepository
	Logger   zerolog.Logger
}

func NewApp(l *ledger.Ledger, journal domain.EventJournal, accounts domain.AccountRepository, logger zerolog.Logger) *App {
	return &App{Ledger: l, Journal: journal, Accounts: accounts, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string) {
	a.json(w, status, map[string]any{
		"error":   code,
		"message": localizedMessage(r.Context(), code),
	})
}
