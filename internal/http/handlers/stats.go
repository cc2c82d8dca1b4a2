package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (a *App) StatsUser(w http.ResponseWriter, r *http.Request) {
	out, err := a.Stats.UserStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, out)
}

func (a *App) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	kind := r.URL.Query().Get("kind")

	switch kind {
	case "", "donors":
		entries, err := a.Stats.TopDonors(r.Context(), limit)
		if err != nil {
			a.domainError(w, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"kind": "donors", "entries": entries})
	case "volunteers":
		entries, err := a.Stats.TopVolunteers(r.Context(), limit)
		if err != nil {
			a.domainError(w, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"kind": "volunteers", "entries": entries})
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "kind must be donors or volunteers")
	}
}

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Stats.Summary(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, summary)
}
