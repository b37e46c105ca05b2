package viewmodel

// DeckOption is a deck choice for the start form.
type DeckOption struct {
	Name  string
	Label string
}

// HomePage holds data for the landing page.
type HomePage struct {
	Title string
	Decks []DeckOption
}

// Tile is one pool or answer position.
type Tile struct {
	ID     int
	Letter string
	Empty  bool
	Locked bool
}

// RoundFragment holds data for the round UI fragment.
type RoundFragment struct {
	SessionID string
	Meaning   string
	Index     int
	Total     int
	Score     int
	Hints     int
	Attempts  int
	Feedback  string
	Pool      []Tile
	Slots     []Tile
	Locked    bool
	Answer    string
	Finished  bool
	RoundKey  string
}

// SummaryFragment holds data for the end-of-session summary.
type SummaryFragment struct {
	SessionID string
	Score     int
	Perfect   int
	Imperfect int
	Total     int
	Elapsed   string
	XP        int
	Completed bool
}
