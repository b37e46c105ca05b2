package scramble

// RoundView is the serialisable form of a round.
type RoundView struct {
	WordID   string     `json:"wordId"`
	Meaning  string     `json:"meaning"`
	Length   int        `json:"length"`
	Pool     []TileView `json:"pool"`
	Slots    []TileView `json:"slots"`
	Revealed []int      `json:"revealed"`
	Hints    int        `json:"hints"`
	Attempts int        `json:"attempts"`
	Feedback Feedback   `json:"feedback"`
	Phase    string     `json:"phase"`
	Answer   string     `json:"answer,omitempty"`
}

// Snapshot is the serialisable form of a session.
type Snapshot struct {
	Index     int       `json:"index"`
	Total     int       `json:"total"`
	Score     int       `json:"score"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	XP        int       `json:"xp"`
	Finished  bool      `json:"finished"`
	Epoch     uint64    `json:"epoch"`
	Round     RoundView `json:"round"`
	Result    *Result   `json:"result,omitempty"`
}

// View renders the round. The target word is only included once solved.
func (r *Round) View() RoundView {
	v := RoundView{
		WordID:   r.Item.ID,
		Meaning:  r.Item.Meaning,
		Length:   len(r.target),
		Pool:     make([]TileView, len(r.pool)),
		Slots:    make([]TileView, len(r.slots)),
		Revealed: r.RevealedPositions(),
		Hints:    r.hints,
		Attempts: r.attempts,
		Feedback: r.feedback,
		Phase:    r.Phase(),
	}
	for i, id := range r.pool {
		v.Pool[i] = r.tileView(id, false)
	}
	for i, id := range r.slots {
		v.Slots[i] = r.tileView(id, r.revealed[i])
	}
	if r.Solved() {
		v.Answer = string(r.target)
	}
	return v
}

func (r *Round) tileView(id TileID, locked bool) TileView {
	t, ok := r.Tile(id)
	if !ok {
		return TileView{ID: NoTile}
	}
	return TileView{ID: t.ID, Letter: string(t.Letter), Locked: locked}
}

// Snapshot renders the session for clients.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Index:     s.index,
		Total:     len(s.words),
		Score:     s.score,
		Correct:   s.correct,
		Incorrect: s.incorrect,
		XP:        s.xp,
		Finished:  s.finished,
		Epoch:     s.epoch,
		Round:     s.round.View(),
	}
	if s.finished {
		snap.Index = len(s.words) - 1
		res := s.Result()
		snap.Result = &res
	}
	return snap
}
