package game

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pkg/errors"

	"promjum/internal/scramble"
)

//go:embed words/*.txt
var wordsFS embed.FS

// DefaultDeck is used when a learner does not pick one.
const DefaultDeck = "en"

// ErrUnknownDeck is returned for a deck with no embedded word list.
var ErrUnknownDeck = errors.New("unknown deck")

// SupportedDecks returns deck names that have an embedded word list.
func SupportedDecks() []string {
	return []string{"en", "travel"}
}

// StarterDeck serves the embedded word lists. Each line is
// "word|meaning"; blank lines and lines starting with # are skipped.
type StarterDeck struct{}

// Words implements VocabularySource.
func (StarterDeck) Words(_ context.Context, deck string) ([]scramble.VocabularyItem, error) {
	return LoadDeck(deck)
}

// LoadDeck parses the embedded word list for deck. Item ids are stable
// across restarts so review history keeps matching.
func LoadDeck(deck string) ([]scramble.VocabularyItem, error) {
	name := strings.TrimSpace(deck)
	if name == "" {
		name = DefaultDeck
	}
	b, err := fs.ReadFile(wordsFS, "words/"+name+".txt")
	if err != nil {
		return nil, errors.Wrap(ErrUnknownDeck, name)
	}
	return ParseDeck(name, strings.NewReader(string(b)))
}

// ParseDeck reads "word|meaning" lines. Ids are derived from the deck name
// and the line's position among entries.
func ParseDeck(deck string, r io.Reader) ([]scramble.VocabularyItem, error) {
	var out []scramble.VocabularyItem
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, meaning, _ := strings.Cut(line, "|")
		out = append(out, scramble.VocabularyItem{
			ID:      fmt.Sprintf("%s-%03d", deck, len(out)+1),
			Word:    strings.TrimSpace(word),
			Meaning: strings.TrimSpace(meaning),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read deck %q", deck)
	}
	return out, nil
}

// Sources tries each source in order and serves the first non-empty deck.
// An unknown deck in one source is not an error as long as a later one has
// it.
type Sources []VocabularySource

// Words implements VocabularySource.
func (s Sources) Words(ctx context.Context, deck string) ([]scramble.VocabularyItem, error) {
	var lastErr error
	for _, src := range s {
		items, err := src.Words(ctx, deck)
		if err != nil {
			lastErr = err
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
	}
	return nil, lastErr
}
