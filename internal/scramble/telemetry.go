package scramble

// ActivityWordScramble is the activity kind reported for this game.
const ActivityWordScramble = "word-scramble"

// Activity is the XP signal sent when a word is solved by the player.
type Activity struct {
	Kind      string
	WordID    string
	IsCorrect bool
	IsBonus   bool
}

// Review is the spaced-repetition signal sent when a word resolves.
type Review struct {
	WordID     string
	Success    bool
	HintsUsed  int
	WordLength int
}

// Telemetry receives learning signals. Implementations must return without
// waiting on any remote call: the session never blocks on, or learns about,
// the outcome of a signal.
type Telemetry interface {
	Activity(Activity)
	Review(Review)
}

// NopTelemetry drops every signal.
type NopTelemetry struct{}

func (NopTelemetry) Activity(Activity) {}
func (NopTelemetry) Review(Review)     {}
