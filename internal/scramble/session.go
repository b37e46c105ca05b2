package scramble

import (
	"math/rand"
	"time"

	"github.com/samber/lo"
)

const (
	// DefaultSessionWords caps the number of words sampled for a session.
	DefaultSessionWords = 10
	// PointsPerWord is awarded for every word the player spells, however
	// many hints it took.
	PointsPerWord = 100
)

// Pacing holds how long feedback stays on screen before the follow-up.
type Pacing struct {
	Retry   time.Duration
	Advance time.Duration
	Reveal  time.Duration
}

// DefaultPacing matches the feedback timings of the game client.
var DefaultPacing = Pacing{
	Retry:   300 * time.Millisecond,
	Advance: 1000 * time.Millisecond,
	Reveal:  1500 * time.Millisecond,
}

// Options configures a session. Zero values fall back to defaults.
type Options struct {
	MaxWords  int
	Pacing    Pacing
	Rand      *rand.Rand
	Now       func() time.Time
	Telemetry Telemetry
}

func (o Options) withDefaults() Options {
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultSessionWords
	}
	if o.Pacing == (Pacing{}) {
		o.Pacing = DefaultPacing
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Telemetry == nil {
		o.Telemetry = NopTelemetry{}
	}
	return o
}

// Step tells the caller what to schedule after an input. When Outcome is not
// OutcomePending the caller should call Retry (for OutcomeRetry) or Advance
// (otherwise) with Epoch once Delay has elapsed.
type Step struct {
	Outcome Outcome
	Delay   time.Duration
	Epoch   uint64
}

// Result is the summary of a finished session.
type Result struct {
	Score          int `json:"score"`
	PerfectWords   int `json:"perfectWords"`
	ImperfectWords int `json:"imperfectWords"`
	ElapsedSeconds int `json:"elapsedSeconds"`
	XPGained       int `json:"xpGained"`
}

// Session owns the sampled word list and the round being played. It is not
// safe for concurrent use; callers serialise access.
type Session struct {
	words      []VocabularyItem
	index      int
	score      int
	correct    int
	incorrect  int
	xp         int
	attempts   map[string]int
	startedAt  time.Time
	finishedAt time.Time
	round      *Round
	epoch      uint64
	finished   bool
	completed  bool
	opts       Options
}

// NewSession samples the vocabulary and starts the first round.
func NewSession(items []VocabularyItem, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	words := SampleWords(items, opts.MaxWords, opts.Rand)
	if len(words) == 0 {
		return nil, ErrNoPlayableWords
	}
	s := &Session{
		words:     words,
		attempts:  make(map[string]int, len(words)),
		startedAt: opts.Now(),
		opts:      opts,
	}
	if err := s.startRound(); err != nil {
		return nil, err
	}
	return s, nil
}

// SampleWords drops unplayable and duplicate items, shuffles the rest with
// Fisher–Yates and keeps at most limit of them.
func SampleWords(items []VocabularyItem, limit int, rng *rand.Rand) []VocabularyItem {
	playable := lo.Filter(items, func(item VocabularyItem, _ int) bool {
		return item.Playable()
	})
	playable = lo.UniqBy(playable, func(item VocabularyItem) string {
		return item.key()
	})
	rng.Shuffle(len(playable), func(i, j int) {
		playable[i], playable[j] = playable[j], playable[i]
	})
	if limit > 0 && len(playable) > limit {
		playable = playable[:limit]
	}
	return playable
}

func (s *Session) startRound() error {
	round, err := NewRound(s.words[s.index], s.opts.Rand)
	if err != nil {
		return err
	}
	s.round = round
	return nil
}

// Place moves a pool tile into the answer row. Filling the last slot checks
// the answer straight away and the returned Step carries the follow-up.
func (s *Session) Place(id TileID) (Step, error) {
	if s.finished {
		return Step{}, ErrSessionFinished
	}
	filled, err := s.round.Place(id)
	if err != nil {
		return Step{}, err
	}
	if !filled {
		return Step{Epoch: s.epoch}, nil
	}
	return s.verify()
}

// Return sends the tile in slot back to the pool.
func (s *Session) Return(slot int) error {
	if s.finished {
		return ErrSessionFinished
	}
	return s.round.Return(slot)
}

func (s *Session) verify() (Step, error) {
	outcome, err := s.round.Verify()
	if err != nil {
		return Step{}, err
	}
	item := s.round.Item
	s.epoch++
	step := Step{Outcome: outcome, Epoch: s.epoch}
	switch outcome {
	case OutcomeCorrect:
		s.score += PointsPerWord
		s.correct++
		s.attempts[item.key()] = s.round.Attempts()
		s.opts.Telemetry.Activity(Activity{
			Kind:      ActivityWordScramble,
			WordID:    item.ID,
			IsCorrect: true,
		})
		s.opts.Telemetry.Review(Review{
			WordID:     item.ID,
			Success:    true,
			HintsUsed:  s.round.HintsRevealed(),
			WordLength: s.round.Length(),
		})
		step.Delay = s.opts.Pacing.Advance
	case OutcomeRetry:
		s.incorrect++
		step.Delay = s.opts.Pacing.Retry
	case OutcomeRevealed:
		s.incorrect++
		s.attempts[item.key()] = s.round.Attempts()
		s.opts.Telemetry.Review(Review{
			WordID:     item.ID,
			Success:    false,
			HintsUsed:  s.round.HintsRevealed(),
			WordLength: s.round.Length(),
		})
		step.Delay = s.opts.Pacing.Reveal
	}
	return step, nil
}

// Retry deals the current word again after wrong-answer feedback. It is a
// no-op returning false when epoch is stale.
func (s *Session) Retry(epoch uint64) bool {
	if s.finished || epoch != s.epoch {
		return false
	}
	if err := s.round.Retry(); err != nil {
		return false
	}
	s.epoch++
	return true
}

// Advance moves past a solved word, finishing the session after the last
// one. It is a no-op returning false when epoch is stale.
func (s *Session) Advance(epoch uint64) bool {
	if s.finished || epoch != s.epoch || !s.round.Solved() {
		return false
	}
	s.epoch++
	s.index++
	if s.index >= len(s.words) {
		s.finish()
		return true
	}
	if err := s.startRound(); err != nil {
		s.finish()
	}
	return true
}

func (s *Session) finish() {
	s.finished = true
	s.finishedAt = s.opts.Now()
}

// Close invalidates every pending follow-up.
func (s *Session) Close() {
	s.epoch++
}

// AddXP accumulates XP reported back by the progress collaborator.
func (s *Session) AddXP(xp int) {
	if xp > 0 {
		s.xp += xp
	}
}

// Epoch returns the token pending follow-ups must present.
func (s *Session) Epoch() uint64 { return s.epoch }

// Finished reports whether the last word has resolved.
func (s *Session) Finished() bool { return s.finished }

// Round returns the round being played, or the last one once finished.
func (s *Session) Round() *Round { return s.round }

// Words returns the sampled word list.
func (s *Session) Words() []VocabularyItem {
	return append([]VocabularyItem(nil), s.words...)
}

// Attempts returns the recorded attempts for a word and whether the word
// has resolved.
func (s *Session) Attempts(wordID string) (int, bool) {
	a, ok := s.attempts[wordID]
	return a, ok
}

// Result summarises the session. A word is perfect only when it resolved
// with zero wrong answers; anything else, including a word with no entry,
// counts as imperfect.
func (s *Session) Result() Result {
	perfect := lo.CountBy(s.words, func(item VocabularyItem) bool {
		attempts, ok := s.attempts[item.key()]
		return ok && attempts == 0
	})
	end := s.finishedAt
	if end.IsZero() {
		end = s.opts.Now()
	}
	return Result{
		Score:          s.score,
		PerfectWords:   perfect,
		ImperfectWords: len(s.words) - perfect,
		ElapsedSeconds: int(end.Sub(s.startedAt) / time.Second),
		XPGained:       s.xp,
	}
}

// Complete hands out the final result. It succeeds exactly once, after the
// last word has resolved.
func (s *Session) Complete() (Result, error) {
	if !s.finished {
		return Result{}, ErrSessionNotFinished
	}
	if s.completed {
		return Result{}, ErrAlreadyCompleted
	}
	s.completed = true
	return s.Result(), nil
}
