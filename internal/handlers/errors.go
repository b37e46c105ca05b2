package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"promjum/internal/game"
	"promjum/internal/scramble"
)

var errBadInput = errors.New("malformed request")

type errorBody struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scramble.ErrBusy),
		errors.Is(err, scramble.ErrSessionFinished),
		errors.Is(err, scramble.ErrSessionNotFinished),
		errors.Is(err, scramble.ErrAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, scramble.ErrNoPlayableWords):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadInput),
		errors.Is(err, game.ErrUnknownDeck),
		errors.Is(err, scramble.ErrTileNotInPool),
		errors.Is(err, scramble.ErrNoEmptySlot),
		errors.Is(err, scramble.ErrSlotOutOfRange),
		errors.Is(err, scramble.ErrSlotEmpty),
		errors.Is(err, scramble.ErrHintLocked):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{Error: msg})
}
