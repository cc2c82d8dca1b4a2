package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type organizationView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Verified bool   `json:"verified"`
}

func newOrganizationView(org *domain.Organization) organizationView {
	return organizationView{ID: org.ID, Name: org.Name, Website: org.Website, Verified: org.Verified}
}

// OrganizationsList returns verified organizations a volunteer may ask to
// validate hours.
func (a *App) OrganizationsList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	orgs, err := a.Orgs.ListVerified(r.Context(), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]organizationView, 0, len(orgs))
	for i := range orgs {
		items = append(items, newOrganizationView(&orgs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) OrganizationGet(w http.ResponseWriter, r *http.Request) {
	org, err := a.Orgs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, newOrganizationView(org))
}
