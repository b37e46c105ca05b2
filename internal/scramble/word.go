package scramble

import (
	"strings"
	"unicode"
)

// VocabularyItem is one word supplied by a vocabulary source. It is never
// mutated while a session is running.
type VocabularyItem struct {
	ID              string `json:"id"`
	Word            string `json:"word"`
	Meaning         string `json:"meaning"`
	IsUserFlashcard bool   `json:"isUserFlashcard,omitempty"`
}

// CleanWord uppercases word and drops every rune that is not a letter.
func CleanWord(word string) []rune {
	out := make([]rune, 0, len(word))
	for _, r := range word {
		if unicode.IsLetter(r) {
			out = append(out, unicode.ToUpper(r))
		}
	}
	return out
}

// Playable reports whether the item still has letters after cleaning.
func (v VocabularyItem) Playable() bool {
	return len(CleanWord(v.Word)) > 0
}

// key identifies the item inside a session. Items without an ID fall back to
// their cleaned word so they still get their own attempts entry.
func (v VocabularyItem) key() string {
	if id := strings.TrimSpace(v.ID); id != "" {
		return id
	}
	return "word:" + string(CleanWord(v.Word))
}
