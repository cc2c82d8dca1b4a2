package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *App) PriceGet(w http.ResponseWriter, r *http.Request) {
	quote, err := a.Prices.Price(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		a.Log.Warn().Err(err).Msg("http: price lookup failed")
		a.error(w, http.StatusBadGateway, "price_unavailable", "could not price token")
		return
	}
	a.json(w, http.StatusOK, quote)
}
