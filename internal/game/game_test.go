package game

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLoadDeck(t *testing.T) {
	for _, deck := range SupportedDecks() {
		items, err := LoadDeck(deck)
		if err != nil {
			t.Fatalf("LoadDeck(%q): %v", deck, err)
		}
		if len(items) < 10 {
			t.Errorf("deck %q has %d words, want at least 10", deck, len(items))
		}
		seen := make(map[string]bool)
		for _, item := range items {
			if !item.Playable() {
				t.Errorf("deck %q: %q is not playable", deck, item.Word)
			}
			if item.Meaning == "" {
				t.Errorf("deck %q: %q has no meaning", deck, item.Word)
			}
			if seen[item.ID] {
				t.Errorf("deck %q: duplicate id %q", deck, item.ID)
			}
			seen[item.ID] = true
		}
	}
}

func TestLoadDeck_DefaultAndUnknown(t *testing.T) {
	items, err := LoadDeck("")
	if err != nil {
		t.Fatal(err)
	}
	if items[0].ID != "en-001" {
		t.Errorf("first id %q, want en-001", items[0].ID)
	}
	if _, err := LoadDeck("klingon"); !errors.Is(err, ErrUnknownDeck) {
		t.Errorf("err = %v, want ErrUnknownDeck", err)
	}
}

func TestParseDeck(t *testing.T) {
	in := "# header\n\ncat | แมว\n dog|หมา\nbird\n"
	items, err := ParseDeck("pets", strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].ID != "pets-001" || items[0].Word != "cat" || items[0].Meaning != "แมว" {
		t.Errorf("first item %+v", items[0])
	}
	if items[2].Word != "bird" || items[2].Meaning != "" {
		t.Errorf("third item %+v", items[2])
	}
}

func TestSources_FirstNonEmptyWins(t *testing.T) {
	empty := fakeSource{}
	failing := fakeSource{err: errors.New("db down")}
	src := Sources{failing, empty, catDeck, StarterDeck{}}
	items, err := src.Words(context.Background(), "en")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "cat" {
		t.Errorf("items = %+v", items)
	}

	items, err = Sources{empty, StarterDeck{}}.Words(context.Background(), "travel")
	if err != nil || len(items) == 0 {
		t.Fatalf("fallback: %d items, err %v", len(items), err)
	}

	if _, err := (Sources{empty, StarterDeck{}}).Words(context.Background(), "klingon"); !errors.Is(err, ErrUnknownDeck) {
		t.Errorf("err = %v, want ErrUnknownDeck", err)
	}
}
