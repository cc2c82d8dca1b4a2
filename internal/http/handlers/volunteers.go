package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
)

type profilePayload struct {
	DisplayName   string `json:"display_name"`
	Email         string `json:"email"`
	WalletAddress string `json:"wallet_address"`
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	v, err := a.Volunteers.GetByID(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":             v.ID,
		"display_name":   v.DisplayName,
		"email":          v.Email,
		"wallet_address": v.WalletAddress,
		"created_at":     v.CreatedAt,
	})
}

// MeUpsert creates or refreshes the caller's profile from the gateway
// identity plus the submitted display fields.
func (a *App) MeUpsert(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req profilePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "display_name required")
		return
	}
	v := &domain.Volunteer{
		ID:            userID,
		DisplayName:   strings.TrimSpace(req.DisplayName),
		Email:         strings.TrimSpace(req.Email),
		WalletAddress: strings.TrimSpace(req.WalletAddress),
		CreatedAt:     time.Now().UTC(),
	}
	if err := a.Volunteers.Upsert(r.Context(), v); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": v.ID, "display_name": v.DisplayName})
}
