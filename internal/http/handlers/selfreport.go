package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/validation"
)

const dateLayout = "2006-01-02"

type selfReportPayload struct {
	OrganizationID *string `json:"organization_id"`
	ActivityDate   string  `json:"activity_date"`
	Hours          float64 `json:"hours"`
	ActivityType   string  `json:"activity_type"`
	Description    string  `json:"description"`
}

type selfReportView struct {
	ID               string  `json:"id"`
	VolunteerID      string  `json:"volunteer_id"`
	OrganizationID   *string `json:"organization_id,omitempty"`
	ActivityDate     string  `json:"activity_date"`
	Hours            float64 `json:"hours"`
	ActivityType     string  `json:"activity_type"`
	Description      string  `json:"description"`
	Status           string  `json:"status"`
	VerificationHash string  `json:"verification_hash,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func newSelfReportView(rec *domain.SelfReportedHours) selfReportView {
	return selfReportView{
		ID:               rec.ID,
		VolunteerID:      rec.VolunteerID,
		OrganizationID:   rec.OrganizationID,
		ActivityDate:     rec.ActivityDate.Format(dateLayout),
		Hours:            rec.Hours,
		ActivityType:     rec.ActivityType,
		Description:      rec.Description,
		Status:           string(rec.Status),
		VerificationHash: rec.VerificationHash,
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        rec.UpdatedAt.Format(time.RFC3339),
	}
}

func (p selfReportPayload) toInput(volunteerID string) (validation.Input, bool) {
	in := validation.Input{
		VolunteerID:    volunteerID,
		OrganizationID: p.OrganizationID,
		Hours:          p.Hours,
		ActivityType:   p.ActivityType,
		Description:    p.Description,
	}
	if p.ActivityDate != "" {
		date, err := time.Parse(dateLayout, p.ActivityDate)
		if err != nil {
			return in, false
		}
		in.ActivityDate = date
	}
	return in, true
}

func (a *App) SelfReportCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req selfReportPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	in, ok := req.toInput(userID)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "activity_date must be YYYY-MM-DD")
		return
	}
	rec, err := a.Workflow.Submit(r.Context(), in)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, newSelfReportView(rec))
}

func (a *App) SelfReportList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recs, err := a.Workflow.List(r.Context(), userID, limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]selfReportView, 0, len(recs))
	for i := range recs {
		items = append(items, newSelfReportView(&recs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) SelfReportGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	rec, err := a.Workflow.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, newSelfReportView(rec))
}

func (a *App) SelfReportUpdate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req selfReportPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	in, ok := req.toInput(userID)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "activity_date must be YYYY-MM-DD")
		return
	}
	rec, err := a.Workflow.Update(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, newSelfReportView(rec))
}

func (a *App) SelfReportDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if err := a.Workflow.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
