package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"promjum/internal/game"
	"promjum/internal/scramble"
	"promjum/internal/viewmodel"
	"promjum/internal/views"
	"promjum/pkg/realtime"
)

const keepAliveInterval = 25 * time.Second

// GameHandler serves the scramble session routes.
type GameHandler struct {
	store   *game.Store
	baseURL string
}

// NewGameHandler creates the handler. baseURL prefixes session links; when
// empty they are built from the request host.
func NewGameHandler(store *game.Store, baseURL string) *GameHandler {
	return &GameHandler{store: store, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// RegisterRoutes mounts the session routes except the event stream.
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.start)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.snapshot)
		r.Delete("/", h.exit)
		r.Post("/place", h.place)
		r.Post("/return", h.returnTile)
		r.Get("/round", h.roundFragment)
		r.Get("/summary", h.summaryFragment)
		r.Post("/finish", h.finish)
		r.Post("/restart", h.restart)
	})
}

// RegisterStream mounts the SSE route. It is kept apart so it can live
// outside request timeouts.
func (h *GameHandler) RegisterStream(r chi.Router) {
	r.Get("/sessions/{id}/stream", h.stream)
}

// finishPayload is what the parent flow receives once a session completes.
type finishPayload struct {
	Score        int `json:"score"`
	CorrectWords int `json:"correctWords"`
	WrongWords   int `json:"wrongWords"`
	TimeSpent    int `json:"timeSpent"`
	XPGained     int `json:"xpGained"`
}

func (h *GameHandler) start(w http.ResponseWriter, r *http.Request) {
	learnerID := ensureLearner(w, r)
	deck, err := readValue(r, "deck")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if deck == "" {
		deck = game.DefaultDeck
	}
	g, err := h.store.Start(r.Context(), learnerID, deck)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", h.sessionURL(r, g.ID))
	if r.Header.Get("Hx-Request") == "true" {
		render(w, r, views.RoundFragment(buildRoundFragment(g.Snapshot())))
		return
	}
	writeJSON(w, http.StatusCreated, g.Snapshot())
}

// owned resolves the session in the URL for the requesting learner. Other
// learners' sessions are reported as missing.
func (h *GameHandler) owned(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok || g.LearnerID != learnerFromCookie(r) {
		writeError(w, r, game.ErrNotFound)
		return nil, false
	}
	return g, true
}

func (h *GameHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (h *GameHandler) place(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	tile, err := readInt(r, "tile")
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := h.store.Place(g.ID, scramble.TileID(tile))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, r, snap)
}

func (h *GameHandler) returnTile(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	slot, err := readInt(r, "slot")
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := h.store.Return(g.ID, slot)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, r, snap)
}

// respond sends the round fragment to htmx callers and JSON otherwise.
func (h *GameHandler) respond(w http.ResponseWriter, r *http.Request, snap game.Snapshot) {
	if r.Header.Get("Hx-Request") == "true" {
		render(w, r, views.RoundFragment(buildRoundFragment(snap)))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *GameHandler) roundFragment(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	render(w, r, views.RoundFragment(buildRoundFragment(g.Snapshot())))
}

func (h *GameHandler) summaryFragment(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	snap := g.Snapshot()
	if snap.Session.Result == nil {
		writeError(w, r, scramble.ErrSessionNotFinished)
		return
	}
	render(w, r, views.SummaryFragment(buildSummaryFragment(snap)))
}

func (h *GameHandler) finish(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	res, err := h.store.Finish(r.Context(), g.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finishPayload{
		Score:        res.Score,
		CorrectWords: res.PerfectWords,
		WrongWords:   res.ImperfectWords,
		TimeSpent:    res.ElapsedSeconds,
		XPGained:     res.XPGained,
	})
}

func (h *GameHandler) restart(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	snap, err := h.store.Restart(r.Context(), g.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, r, snap)
}

func (h *GameHandler) exit(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	if err := h.store.Exit(g.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	g, ok := h.owned(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	hub, ok := h.store.Broadcaster(g.ID)
	if !ok {
		writeError(w, r, game.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendSnapshot := func(data string) {
		writeSSE(w, game.EventSnapshot, data)
		snap := g.Snapshot()
		writeSSE(w, "round", renderToString(r, views.RoundFragment(buildRoundFragment(snap))))
		if snap.Session.Result != nil {
			writeSSE(w, "summary", renderToString(r, views.SummaryFragment(buildSummaryFragment(snap))))
		}
		flusher.Flush()
	}

	initial, err := json.Marshal(g.Snapshot())
	if err != nil {
		writeError(w, r, err)
		return
	}
	sendSnapshot(string(initial))

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				writeSSE(w, "closed", g.ID)
				flusher.Flush()
				return
			}
			relay(w, event, sendSnapshot)
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func relay(w http.ResponseWriter, event realtime.Event, sendSnapshot func(string)) {
	if event.Name == game.EventSnapshot {
		sendSnapshot(event.Data)
		return
	}
	writeSSE(w, event.Name, event.Data)
}

func (h *GameHandler) sessionURL(r *http.Request, id string) string {
	if h.baseURL != "" {
		return h.baseURL + "/sessions/" + id
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/sessions/" + id
}

func buildRoundFragment(snap game.Snapshot) viewmodel.RoundFragment {
	round := snap.Session.Round
	return viewmodel.RoundFragment{
		SessionID: snap.ID,
		Meaning:   round.Meaning,
		Index:     snap.Session.Index,
		Total:     snap.Session.Total,
		Score:     snap.Session.Score,
		Hints:     round.Hints,
		Attempts:  round.Attempts,
		Feedback:  string(round.Feedback),
		Pool:      toTiles(round.Pool),
		Slots:     toTiles(round.Slots),
		Locked:    round.Phase != scramble.PhaseIdle || snap.Session.Finished,
		Answer:    round.Answer,
		Finished:  snap.Session.Finished,
		RoundKey:  buildRoundKey(snap),
	}
}

func buildSummaryFragment(snap game.Snapshot) viewmodel.SummaryFragment {
	res := lo.FromPtr(snap.Session.Result)
	return viewmodel.SummaryFragment{
		SessionID: snap.ID,
		Score:     res.Score,
		Perfect:   res.PerfectWords,
		Imperfect: res.ImperfectWords,
		Total:     snap.Session.Total,
		Elapsed:   formatElapsed(res.ElapsedSeconds),
		XP:        res.XPGained,
		Completed: snap.Status == game.StatusCompleted,
	}
}

func toTiles(tiles []scramble.TileView) []viewmodel.Tile {
	return lo.Map(tiles, func(t scramble.TileView, _ int) viewmodel.Tile {
		return viewmodel.Tile{
			ID:     int(t.ID),
			Letter: t.Letter,
			Empty:  t.ID == scramble.NoTile,
			Locked: t.Locked,
		}
	})
}

func buildRoundKey(snap game.Snapshot) string {
	return strings.Join([]string{
		snap.Status,
		strconv.Itoa(snap.Session.Index),
		strconv.FormatUint(snap.Session.Epoch, 10),
	}, "|")
}

func formatElapsed(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
