package scramble

import (
	"math/rand"
	"testing"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// correctOrder returns the pool tiles that spell the word into the empty
// slots, in slot order.
func correctOrder(t *testing.T, r *Round) []TileID {
	t.Helper()
	target := []rune(r.Target())
	used := make(map[TileID]bool)
	var ids []TileID
	for i, slot := range r.Slots() {
		if slot != NoTile {
			continue
		}
		found := NoTile
		for _, id := range r.Pool() {
			if id == NoTile || used[id] {
				continue
			}
			if tile, _ := r.Tile(id); tile.Letter == target[i] {
				found = id
				break
			}
		}
		if found == NoTile {
			t.Fatalf("no pool tile for %q at %d", target[i], i)
		}
		used[found] = true
		ids = append(ids, found)
	}
	return ids
}

// wrongOrder returns a placement order that fills the row with a misspelling.
func wrongOrder(t *testing.T, r *Round) []TileID {
	t.Helper()
	ids := correctOrder(t, r)
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			a, _ := r.Tile(ids[i])
			b, _ := r.Tile(ids[j])
			if a.Letter != b.Letter {
				ids[i], ids[j] = ids[j], ids[i]
				return ids
			}
		}
	}
	t.Fatalf("cannot misspell %q with %d hidden letters", r.Target(), len(ids))
	return nil
}

func fillRound(t *testing.T, r *Round, ids []TileID) Outcome {
	t.Helper()
	for _, id := range ids {
		if _, err := r.Place(id); err != nil {
			t.Fatalf("Place(%d): %v", id, err)
		}
	}
	out, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return out
}

func fillSession(t *testing.T, s *Session, ids []TileID) Step {
	t.Helper()
	var step Step
	for _, id := range ids {
		var err error
		step, err = s.Place(id)
		if err != nil {
			t.Fatalf("Place(%d): %v", id, err)
		}
	}
	return step
}

type recorder struct {
	activities []Activity
	reviews    []Review
}

func (r *recorder) Activity(a Activity) { r.activities = append(r.activities, a) }
func (r *recorder) Review(rv Review)    { r.reviews = append(r.reviews, rv) }
