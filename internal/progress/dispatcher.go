package progress

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"promjum/internal/scramble"
	"promjum/internal/srs"
)

// Awarder turns activities into XP.
type Awarder interface {
	Award(ctx context.Context, learnerID string, a scramble.Activity) (int, error)
}

// Reviewer records spaced-repetition reviews.
type Reviewer interface {
	Record(ctx context.Context, learnerID string, r scramble.Review) (srs.Card, error)
}

// Dispatcher runs XP and review calls in the background so play never
// waits on storage. Failures are logged and count as zero XP.
type Dispatcher struct {
	xp      Awarder
	reviews Reviewer
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Each call gets timeout to finish.
func NewDispatcher(xp Awarder, reviews Reviewer, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{xp: xp, reviews: reviews, timeout: timeout}
}

// Telemetry returns the session's telemetry port.
func (d *Dispatcher) Telemetry(learnerID, sessionID string, onXP func(xp int)) scramble.Telemetry {
	return &sessionTelemetry{d: d, learnerID: learnerID, sessionID: sessionID, onXP: onXP}
}

// Wait blocks until every in-flight call has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) spawn(fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		fn(ctx)
	}()
}

type sessionTelemetry struct {
	d         *Dispatcher
	learnerID string
	sessionID string
	onXP      func(int)
}

func (t *sessionTelemetry) Activity(a scramble.Activity) {
	t.d.spawn(func(ctx context.Context) {
		xp, err := t.d.xp.Award(ctx, t.learnerID, a)
		if err != nil {
			log.Warn().Err(err).Str("session", t.sessionID).Str("word", a.WordID).Msg("record xp")
			return
		}
		if xp > 0 && t.onXP != nil {
			t.onXP(xp)
		}
	})
}

// Review skips words without an id: there is no card to schedule.
func (t *sessionTelemetry) Review(r scramble.Review) {
	if r.WordID == "" {
		return
	}
	t.d.spawn(func(ctx context.Context) {
		if _, err := t.d.reviews.Record(ctx, t.learnerID, r); err != nil {
			log.Warn().Err(err).Str("session", t.sessionID).Str("word", r.WordID).Msg("record review")
		}
	})
}
