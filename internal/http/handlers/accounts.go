package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *App) AccountsGet(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "id")
	balance, err := a.Accounts.Balance(r.Context(), account)
	if err != nil {
		a.Logger.Error().Err(err).Str("account", account).Msg("balance lookup failed")
		a.error(w, r, http.StatusInternalServerError, "internal")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": account, "balance": balance})
}
