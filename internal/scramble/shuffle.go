package scramble

import "math/rand"

// maxShuffleAttempts bounds the retries spent looking for an order that
// differs from the source letters.
const maxShuffleAttempts = 10

// Scramble returns a shuffled copy of letters. For two or more letters that
// are not all identical it retries up to maxShuffleAttempts times to avoid
// returning the source order, and accepts the last shuffle after that.
func Scramble(letters []rune, rng *rand.Rand) []rune {
	out := make([]rune, len(letters))
	copy(out, letters)
	if len(out) <= 1 || allSame(out) {
		shuffleRunes(out, rng)
		return out
	}
	for attempt := 0; attempt < maxShuffleAttempts; attempt++ {
		shuffleRunes(out, rng)
		if string(out) != string(letters) {
			break
		}
	}
	return out
}

func shuffleRunes(letters []rune, rng *rand.Rand) {
	rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
}

func allSame(letters []rune) bool {
	for _, r := range letters[1:] {
		if r != letters[0] {
			return false
		}
	}
	return true
}
