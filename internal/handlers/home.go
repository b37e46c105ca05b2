package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"promjum/internal/game"
	"promjum/internal/viewmodel"
	"promjum/internal/views"
)

var deckLabels = map[string]string{
	"en":     "Everyday English",
	"travel": "Travel",
}

type HomeHandler struct {
	store *game.Store
}

func NewHomeHandler(store *game.Store) *HomeHandler {
	return &HomeHandler{store: store}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/healthz", h.health)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, views.HomePage(viewmodel.HomePage{
		Title: "Promjum",
		Decks: lo.Map(game.SupportedDecks(), func(name string, _ int) viewmodel.DeckOption {
			return viewmodel.DeckOption{Name: name, Label: lo.ValueOr(deckLabels, name, name)}
		}),
	}))
}

func (h *HomeHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.store.Len(),
		"decks":    game.SupportedDecks(),
	})
}
