package game

import (
	"errors"
	"sync"
	"time"

	"promjum/internal/scramble"
)

const (
	StatusPlaying   = "playing"
	StatusFinished  = "finished"
	StatusCompleted = "completed"
)

// ErrNotFound is returned for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Game wraps one learner's scramble session. The mutex is the single writer
// lock: every input, follow-up and snapshot goes through it.
type Game struct {
	mu        sync.Mutex
	ID        string
	LearnerID string
	Deck      string
	CreatedAt time.Time
	updatedAt time.Time
	session   *scramble.Session
	result    *scramble.Result
	// gen counts session replacements so follow-ups owed to an old session
	// never reach its successor.
	gen uint64
}

// FollowUp is a delayed transition owed to one session of a game.
type FollowUp struct {
	gen  uint64
	Step scramble.Step
}

func (g *Game) status() string {
	switch {
	case g.result != nil:
		return StatusCompleted
	case g.session.Finished():
		return StatusFinished
	default:
		return StatusPlaying
	}
}

// Status returns the lifecycle state of the game.
func (g *Game) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status()
}

// Place moves a pool tile into the answer row.
func (g *Game) Place(id scramble.TileID, now time.Time) (FollowUp, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updatedAt = now
	step, err := g.session.Place(id)
	return FollowUp{gen: g.gen, Step: step}, err
}

// Return sends the tile in slot back to the pool.
func (g *Game) Return(slot int, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updatedAt = now
	return g.session.Return(slot)
}

// Run performs a follow-up. It reports false when the follow-up is stale.
func (g *Game) Run(f FollowUp) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f.gen != g.gen {
		return false
	}
	if f.Step.Outcome == scramble.OutcomeRetry {
		return g.session.Retry(f.Step.Epoch)
	}
	return g.session.Advance(f.Step.Epoch)
}

// AddXP credits xp earned in sess. It reports false and drops the XP when
// sess has been replaced or the game has already handed out its result.
func (g *Game) AddXP(sess *scramble.Session, xp int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if sess != g.session || g.result != nil {
		return false
	}
	g.session.AddXP(xp)
	return true
}

// Complete returns the result exactly once, after the last word.
func (g *Game) Complete() (scramble.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, err := g.session.Complete()
	if err != nil {
		return res, err
	}
	g.result = &res
	return res, nil
}

// replace swaps in a new session and invalidates follow-ups of the old one.
func (g *Game) replace(s *scramble.Session, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.Close()
	g.session = s
	g.gen++
	g.result = nil
	g.updatedAt = now
}

func (g *Game) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.Close()
}

// Idle reports whether nobody has touched the game for ttl.
func (g *Game) Idle(now time.Time, ttl time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return now.Sub(g.updatedAt) > ttl
}

// Snapshot captures the state needed for rendering.
type Snapshot struct {
	ID        string            `json:"id"`
	LearnerID string            `json:"-"`
	Deck      string            `json:"deck"`
	Status    string            `json:"status"`
	Session   scramble.Snapshot `json:"session"`
}

// Snapshot returns a consistent view of the game.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		ID:        g.ID,
		LearnerID: g.LearnerID,
		Deck:      g.Deck,
		Status:    g.status(),
		Session:   g.session.Snapshot(),
	}
}
