package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"promjum/internal/scramble"
	"promjum/pkg/realtime"
)

// Event names published to session subscribers.
const (
	EventSnapshot = "snapshot"
	EventFinished = "finished"
)

// VocabularySource supplies the words a session samples from.
type VocabularySource interface {
	Words(ctx context.Context, deck string) ([]scramble.VocabularyItem, error)
}

// Progress builds the telemetry port for one session. onXP is called with
// the XP awarded for each reported activity, and never from inside a
// Telemetry method: the game lock is held while those run.
type Progress interface {
	Telemetry(learnerID, sessionID string, onXP func(xp int)) scramble.Telemetry
}

// ResultRecorder persists a completed session.
type ResultRecorder interface {
	RecordResult(ctx context.Context, learnerID, sessionID string, res scramble.Result) error
}

// Config tunes new sessions.
type Config struct {
	MaxWords int
	Pacing   scramble.Pacing
	// TTL is how long an untouched session survives the janitor.
	TTL time.Duration
}

// Store holds live games and delegates to realtime.RoomStore for broadcast
// and delayed follow-ups.
type Store struct {
	r        *realtime.RoomStore[*Game]
	words    VocabularySource
	progress Progress
	results  ResultRecorder
	cfg      Config
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithProgress reports XP and review signals through p.
func WithProgress(p Progress) Option {
	return func(s *Store) { s.progress = p }
}

// WithResults persists completed sessions through r.
func WithResults(r ResultRecorder) Option {
	return func(s *Store) { s.results = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an in-memory game store with SSE broadcasters.
func NewStore(words VocabularySource, cfg Config, opts ...Option) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	s := &Store{
		r:     realtime.NewRoomStore[*Game](),
		words: words,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start samples a deck and registers a new game for the learner.
func (s *Store) Start(ctx context.Context, learnerID, deck string) (*Game, error) {
	items, err := s.words.Words(ctx, deck)
	if err != nil {
		return nil, errors.Wrapf(err, "load deck %q", deck)
	}
	now := s.now()
	g := &Game{
		ID:        uuid.NewString(),
		LearnerID: learnerID,
		Deck:      deck,
		CreatedAt: now,
		updatedAt: now,
	}
	g.session, err = s.newSession(g, items)
	if err != nil {
		return nil, err
	}
	s.r.Create(g.ID, g)
	log.Info().Str("session", g.ID).Str("learner", learnerID).Str("deck", deck).Msg("session started")
	s.publish(g)
	return g, nil
}

func (s *Store) newSession(g *Game, items []scramble.VocabularyItem) (*scramble.Session, error) {
	opts := scramble.Options{
		MaxWords: s.cfg.MaxWords,
		Pacing:   s.cfg.Pacing,
		Now:      s.now,
	}
	// sess is assigned before any input reaches the session, so telemetry
	// callbacks always see it.
	var sess *scramble.Session
	if s.progress != nil {
		opts.Telemetry = s.progress.Telemetry(g.LearnerID, g.ID, func(xp int) {
			if g.AddXP(sess, xp) {
				s.publish(g)
				return
			}
			log.Debug().Str("session", g.ID).Int("xp", xp).Msg("dropped xp for replaced or completed session")
		})
	}
	var err error
	sess, err = scramble.NewSession(items, opts)
	return sess, err
}

// Get returns a game by ID if it exists.
func (s *Store) Get(id string) (*Game, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Len returns the number of live games.
func (s *Store) Len() int {
	return s.r.Len()
}

// Broadcaster returns the SSE broadcaster for a game.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.r.Broadcaster(id)
}

// Place moves a tile into the answer row and schedules whatever follow-up
// the answer check asked for.
func (s *Store) Place(id string, tile scramble.TileID) (Snapshot, error) {
	g, ok := s.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	f, err := g.Place(tile, s.now())
	if err != nil {
		return Snapshot{}, err
	}
	s.schedule(g, f)
	return s.publish(g), nil
}

// Return sends a tile from the answer row back to the pool.
func (s *Store) Return(id string, slot int) (Snapshot, error) {
	g, ok := s.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	if err := g.Return(slot, s.now()); err != nil {
		return Snapshot{}, err
	}
	return s.publish(g), nil
}

func (s *Store) schedule(g *Game, f FollowUp) {
	if f.Step.Outcome == scramble.OutcomePending {
		return
	}
	s.r.Schedule(g.ID, f.Step.Delay, func() {
		if g.Run(f) {
			s.publish(g)
		}
	})
}

// Restart deals a fresh sample into the same game id.
func (s *Store) Restart(ctx context.Context, id string) (Snapshot, error) {
	g, ok := s.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	items, err := s.words.Words(ctx, g.Deck)
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, "load deck %q", g.Deck)
	}
	sess, err := s.newSession(g, items)
	if err != nil {
		return Snapshot{}, err
	}
	g.replace(sess, s.now())
	log.Info().Str("session", id).Msg("session restarted")
	return s.publish(g), nil
}

// Finish completes the game once and persists the result. A failure to
// persist is logged and does not fail the call.
func (s *Store) Finish(ctx context.Context, id string) (scramble.Result, error) {
	g, ok := s.Get(id)
	if !ok {
		return scramble.Result{}, ErrNotFound
	}
	res, err := g.Complete()
	if err != nil {
		return res, err
	}
	if s.results != nil {
		if err := s.results.RecordResult(ctx, g.LearnerID, g.ID, res); err != nil {
			log.Warn().Err(err).Str("session", id).Msg("record session result")
		}
	}
	s.publish(g)
	s.r.Publish(id, realtime.Event{Name: EventFinished})
	return res, nil
}

// Exit tears the game down and cancels its pending follow-ups.
func (s *Store) Exit(id string) error {
	g, ok := s.Get(id)
	if !ok {
		return ErrNotFound
	}
	g.close()
	s.r.Delete(id)
	log.Info().Str("session", id).Msg("session closed")
	return nil
}

// Sweep drops games idle for longer than the configured TTL.
func (s *Store) Sweep() int {
	now := s.now()
	ids := s.r.Sweep(func(g *Game) bool {
		if g.Idle(now, s.cfg.TTL) {
			g.close()
			return true
		}
		return false
	})
	if len(ids) > 0 {
		log.Info().Int("count", len(ids)).Msg("swept idle sessions")
	}
	return len(ids)
}

// RunJanitor sweeps idle games every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) publish(g *Game) Snapshot {
	snap := g.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Str("session", g.ID).Msg("encode snapshot")
		return snap
	}
	s.r.Publish(g.ID, realtime.Event{Name: EventSnapshot, Data: string(data)})
	return snap
}
