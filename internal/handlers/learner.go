package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const learnerCookie = "promjum_learner"

func learnerFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(learnerCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ensureLearner returns the learner id from the cookie, issuing a new one
// when the request has none.
func ensureLearner(w http.ResponseWriter, r *http.Request) string {
	if id := learnerFromCookie(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     learnerCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
	return id
}
