package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type validationRequestView struct {
	ID                string  `json:"id"`
	HoursID           string  `json:"hours_id"`
	OrganizationID    string  `json:"organization_id"`
	Status            string  `json:"status"`
	ExpiresAt         string  `json:"expires_at"`
	ResponseNote      string  `json:"response_note,omitempty"`
	ResponderID       *string `json:"responder_id,omitempty"`
	OriginalRequestID *string `json:"original_request_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

func newValidationRequestView(req *domain.ValidationRequest) validationRequestView {
	return validationRequestView{
		ID:                req.ID,
		HoursID:           req.HoursID,
		OrganizationID:    req.OrganizationID,
		Status:            string(req.Status),
		ExpiresAt:         req.ExpiresAt.Format(time.RFC3339),
		ResponseNote:      req.ResponseNote,
		ResponderID:       req.ResponderID,
		OriginalRequestID: req.OriginalRequestID,
		CreatedAt:         req.CreatedAt.Format(time.RFC3339),
	}
}

func (a *App) ValidationRequestCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req struct {
		OrganizationID string `json:"organization_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.OrganizationID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "organization_id required")
		return
	}
	created, err := a.Workflow.RequestValidation(r.Context(), userID, chi.URLParam(r, "id"), req.OrganizationID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, newValidationRequestView(created))
}

func (a *App) ValidationQueue(w http.ResponseWriter, r *http.Request) {
	orgID := a.currentOrgID(r)
	if orgID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing organization context")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := a.Workflow.Queue(r.Context(), orgID, limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"request":        newValidationRequestView(&item.Request),
			"volunteer_name": item.VolunteerName,
			"activity_date":  item.ActivityDate.Format(dateLayout),
			"hours":          item.Hours,
			"activity_type":  item.ActivityType,
			"description":    item.Description,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) ValidationRespond(w http.ResponseWriter, r *http.Request) {
	orgID := a.currentOrgID(r)
	if orgID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing organization context")
		return
	}
	var req struct {
		Approve     bool   `json:"approve"`
		Note        string `json:"note"`
		ResponderID string `json:"responder_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	updated, err := a.Workflow.Respond(r.Context(), orgID, chi.URLParam(r, "id"), req.Approve, req.Note, req.ResponderID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, newValidationRequestView(updated))
}

func (a *App) ValidationResubmit(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	created, err := a.Workflow.Resubmit(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, newValidationRequestView(created))
}

func (a *App) ValidationCancel(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if err := a.Workflow.Cancel(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
