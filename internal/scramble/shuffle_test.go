package scramble

import (
	"sort"
	"testing"
)

func sortedRunes(rs []rune) string {
	out := append([]rune(nil), rs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return string(out)
}

func TestScramble_DiffersFromSource(t *testing.T) {
	words := []string{"HOUSE", "CHARMINGLY", "BANANA", "LETTER"}
	for _, w := range words {
		for seed := int64(1); seed <= 50; seed++ {
			got := Scramble([]rune(w), newRand(seed))
			if string(got) == w {
				t.Errorf("Scramble(%q) seed %d returned the source order", w, seed)
			}
			if sortedRunes(got) != sortedRunes([]rune(w)) {
				t.Errorf("Scramble(%q) = %q, letters changed", w, string(got))
			}
		}
	}
}

func TestScramble_TrivialInputs(t *testing.T) {
	tests := []string{"", "A", "AAA"}
	for _, w := range tests {
		got := Scramble([]rune(w), newRand(7))
		if string(got) != w {
			t.Errorf("Scramble(%q) = %q", w, string(got))
		}
	}
}

func TestScramble_TwoLettersKeepsLetters(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		got := Scramble([]rune("GO"), newRand(seed))
		if sortedRunes(got) != "GO" {
			t.Fatalf("Scramble(GO) = %q", string(got))
		}
	}
}

func TestScramble_DoesNotMutateInput(t *testing.T) {
	in := []rune("HOUSE")
	Scramble(in, newRand(3))
	if string(in) != "HOUSE" {
		t.Errorf("input mutated to %q", string(in))
	}
}
