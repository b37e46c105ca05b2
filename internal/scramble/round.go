package scramble

import (
	"context"
	"math/rand"
	"strings"

	"github.com/looplab/fsm"
)

// Round phases.
const (
	PhaseIdle     = "idle"
	PhaseChecking = "checking"
	PhaseWrong    = "wrong"
	PhaseSolved   = "solved"
)

const (
	eventFill   = "fill"
	eventAccept = "accept"
	eventReject = "reject"
	eventReveal = "reveal"
	eventRetry  = "retry"
)

// Feedback is the colour the answer row is shown with.
type Feedback string

const (
	FeedbackIdle    Feedback = "idle"
	FeedbackCorrect Feedback = "correct"
	FeedbackWrong   Feedback = "wrong"
)

// Outcome is the result of checking a filled answer row.
type Outcome int

const (
	// OutcomePending means the row is not full yet.
	OutcomePending Outcome = iota
	// OutcomeCorrect means the player spelled the word.
	OutcomeCorrect
	// OutcomeRetry means the answer was wrong and more hints were revealed.
	OutcomeRetry
	// OutcomeRevealed means hints ran out and the word was solved for the player.
	OutcomeRevealed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeRetry:
		return "retry"
	case OutcomeRevealed:
		return "revealed"
	default:
		return "pending"
	}
}

// Round is the state of a single word from scramble to resolution.
//
// Pool and slots hold handles into tiles. Every handle lives in exactly one
// of the two; revealed slots hold hint letters that cannot be moved.
type Round struct {
	Item VocabularyItem

	target   []rune
	tiles    []Tile
	pool     []TileID
	slots    []TileID
	revealed []bool
	hints    int
	attempts int
	feedback Feedback
	phase    *fsm.FSM
	rng      *rand.Rand
}

// NewRound cleans the item's word, deals its letters into a scrambled pool
// and resets every per-word counter.
func NewRound(item VocabularyItem, rng *rand.Rand) (*Round, error) {
	target := CleanWord(item.Word)
	if len(target) == 0 {
		return nil, ErrEmptyWord
	}
	r := &Round{
		Item:     item,
		target:   target,
		revealed: make([]bool, len(target)),
		feedback: FeedbackIdle,
		phase:    newPhaseMachine(),
		rng:      rng,
	}
	r.deal()
	return r, nil
}

func newPhaseMachine() *fsm.FSM {
	return fsm.NewFSM(
		PhaseIdle,
		fsm.Events{
			{Name: eventFill, Src: []string{PhaseIdle}, Dst: PhaseChecking},
			{Name: eventAccept, Src: []string{PhaseChecking}, Dst: PhaseSolved},
			{Name: eventReveal, Src: []string{PhaseChecking}, Dst: PhaseSolved},
			{Name: eventReject, Src: []string{PhaseChecking}, Dst: PhaseWrong},
			{Name: eventRetry, Src: []string{PhaseWrong}, Dst: PhaseIdle},
		},
		fsm.Callbacks{},
	)
}

// fire moves the phase machine. The machine has no callbacks, so the
// context only satisfies the API.
func (r *Round) fire(event string) error {
	return r.phase.Event(context.Background(), event)
}

// deal rebuilds the arena: revealed positions get their letter pre-placed,
// every other letter is scrambled into a fresh pool.
func (r *Round) deal() {
	r.tiles = make([]Tile, 0, len(r.target))
	r.slots = emptyPositions(len(r.target))
	hidden := make([]rune, 0, len(r.target))
	for i, letter := range r.target {
		if r.revealed[i] {
			r.slots[i] = r.newTile(letter)
			continue
		}
		hidden = append(hidden, letter)
	}
	scrambled := Scramble(hidden, r.rng)
	r.pool = make([]TileID, len(scrambled))
	for i, letter := range scrambled {
		r.pool[i] = r.newTile(letter)
	}
}

func (r *Round) newTile(letter rune) TileID {
	id := TileID(len(r.tiles))
	r.tiles = append(r.tiles, Tile{ID: id, Letter: letter, Origin: -1})
	return id
}

// Place moves a pool tile into the first empty answer slot and reports
// whether the answer row is now full.
func (r *Round) Place(id TileID) (bool, error) {
	if !r.phase.Is(PhaseIdle) {
		return false, ErrBusy
	}
	from := indexOf(r.pool, id)
	if id == NoTile || from < 0 {
		return false, ErrTileNotInPool
	}
	to := firstEmpty(r.slots)
	if to < 0 {
		return false, ErrNoEmptySlot
	}
	r.tiles[id].Origin = from
	r.slots[to] = id
	r.pool[from] = NoTile
	return r.Filled(), nil
}

// Return sends the tile in slot back to the pool position it came from, so
// the rest of the pool never shifts. If that position is unknown or taken the
// tile goes to the first hole, or is appended.
func (r *Round) Return(slot int) error {
	if !r.phase.Is(PhaseIdle) {
		return ErrBusy
	}
	if slot < 0 || slot >= len(r.slots) {
		return ErrSlotOutOfRange
	}
	if r.revealed[slot] {
		return ErrHintLocked
	}
	id := r.slots[slot]
	if id == NoTile {
		return ErrSlotEmpty
	}
	r.slots[slot] = NoTile
	origin := r.tiles[id].Origin
	r.tiles[id].Origin = -1
	switch {
	case origin >= 0 && origin < len(r.pool) && r.pool[origin] == NoTile:
		r.pool[origin] = id
	case firstEmpty(r.pool) >= 0:
		r.pool[firstEmpty(r.pool)] = id
	default:
		r.pool = append(r.pool, id)
	}
	return nil
}

// Filled reports whether every answer slot holds a tile.
func (r *Round) Filled() bool {
	return firstEmpty(r.slots) < 0
}

// Verify checks a full answer row. A wrong answer reveals more hints and
// leaves the round in PhaseWrong until Retry; running out of hidden letters
// solves the word for the player.
func (r *Round) Verify() (Outcome, error) {
	if !r.Filled() {
		return OutcomePending, nil
	}
	if err := r.fire(eventFill); err != nil {
		return OutcomePending, ErrBusy
	}
	if strings.EqualFold(r.answer(), string(r.target)) {
		r.feedback = FeedbackCorrect
		_ = r.fire(eventAccept)
		return OutcomeCorrect, nil
	}
	r.attempts++
	if r.escalate() {
		r.revealAll()
		r.feedback = FeedbackCorrect
		_ = r.fire(eventReveal)
		return OutcomeRevealed, nil
	}
	r.feedback = FeedbackWrong
	_ = r.fire(eventReject)
	return OutcomeRetry, nil
}

// Retry clears wrong-answer feedback and deals the round again with every
// revealed letter locked in place.
func (r *Round) Retry() error {
	if err := r.fire(eventRetry); err != nil {
		return ErrBusy
	}
	r.feedback = FeedbackIdle
	r.deal()
	return nil
}

func (r *Round) revealAll() {
	for i := range r.revealed {
		r.revealed[i] = true
	}
	r.hints = len(r.target)
	r.deal()
}

func (r *Round) answer() string {
	var b strings.Builder
	for _, id := range r.slots {
		if id != NoTile {
			b.WriteRune(r.tiles[id].Letter)
		}
	}
	return b.String()
}

// Phase returns the current phase name.
func (r *Round) Phase() string { return r.phase.Current() }

// Solved reports whether the word is resolved, by the player or by hints.
func (r *Round) Solved() bool { return r.phase.Is(PhaseSolved) }

// Attempts returns the number of wrong answers given for this word.
func (r *Round) Attempts() int { return r.attempts }

// HintsRevealed returns the number of hint letters granted so far.
func (r *Round) HintsRevealed() int { return r.hints }

// Length returns the number of letters in the cleaned word.
func (r *Round) Length() int { return len(r.target) }

// Feedback returns the current feedback state.
func (r *Round) Feedback() Feedback { return r.feedback }

// Target returns the cleaned word.
func (r *Round) Target() string { return string(r.target) }

// Pool returns a copy of the pool handles.
func (r *Round) Pool() []TileID { return append([]TileID(nil), r.pool...) }

// Slots returns a copy of the answer slot handles.
func (r *Round) Slots() []TileID { return append([]TileID(nil), r.slots...) }

// Tile returns the tile behind a handle.
func (r *Round) Tile(id TileID) (Tile, bool) {
	if id < 0 || int(id) >= len(r.tiles) {
		return Tile{}, false
	}
	return r.tiles[id], true
}

// RevealedPositions returns the hint positions in ascending order.
func (r *Round) RevealedPositions() []int {
	out := make([]int, 0, r.hints)
	for i, ok := range r.revealed {
		if ok {
			out = append(out, i)
		}
	}
	return out
}
