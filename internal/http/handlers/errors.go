package handlers

import (
	"context"
	"errors"
	"net/http"

	"server/internal/domain"
	"server/internal/middleware"
)

// mapError translates a ledger error into an HTTP status and a stable error
// code clients can branch on.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidGoal):
		return http.StatusUnprocessableEntity, "invalid_goal"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, domain.ErrUnknownCampaign):
		return http.StatusNotFound, "unknown_campaign"
	case errors.Is(err, domain.ErrCampaignEnded):
		return http.StatusConflict, "campaign_ended"
	case errors.Is(err, domain.ErrCampaignStillOngoing):
		return http.StatusConflict, "campaign_still_ongoing"
	case errors.Is(err, domain.ErrAlreadyEnded):
		return http.StatusConflict, "already_ended"
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway, "transfer_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

var messages = map[string]map[string]string{
	"en": {
		"invalid_goal":           "campaign goal must be positive",
		"invalid_amount":         "donation amount must not be negative",
		"unknown_campaign":       "campaign not found",
		"campaign_ended":         "campaign is no longer accepting donations",
		"campaign_still_ongoing": "campaign deadline has not passed yet",
		"already_ended":          "campaign has already paid out",
		"transfer_failed":        "payout to beneficiary failed",
		"bad_request":            "invalid request payload",
		"internal":               "internal error",
	},
	"id": {
		"invalid_goal":           "target kampanye harus positif",
		"invalid_amount":         "jumlah donasi tidak boleh negatif",
		"unknown_campaign":       "kampanye tidak ditemukan",
		"campaign_ended":         "kampanye sudah tidak menerima donasi",
		"campaign_still_ongoing": "tenggat kampanye belum berakhir",
		"already_ended":          "kampanye sudah dibayarkan",
		"transfer_failed":        "pembayaran ke penerima gagal",
		"bad_request":            "payload permintaan tidak valid",
		"internal":               "kesalahan internal",
	},
	"es": {
		"invalid_goal":           "la meta de la campaña debe ser positiva",
		"invalid_amount":         "el monto de la donación no puede ser negativo",
		"unknown_campaign":       "campaña no encontrada",
		"campaign_ended":         "la campaña ya no acepta donaciones",
		"campaign_still_ongoing": "el plazo de la campaña aún no vence",
		"already_ended":          "la campaña ya fue pagada",
		"transfer_failed":        "el pago al beneficiario falló",
		"bad_request":            "cuerpo de la solicitud inválido",
		"internal":               "error interno",
	},
}

func localizedMessage(ctx context.Context, code string) string {
	locale := middleware.LocaleFromContext(ctx)
	if catalog, ok := messages[locale]; ok {
		if msg, ok := catalog[code]; ok {
			return msg
		}
	}
	return messages["en"][code]
}
