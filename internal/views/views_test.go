package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"promjum/internal/viewmodel"
)

func TestRoundFragment(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.RoundFragment{
		SessionID: "s1",
		Meaning:   "<cat>",
		Index:     1,
		Total:     10,
		Score:     100,
		Feedback:  "idle",
		Slots:     []viewmodel.Tile{{ID: 3, Letter: "C", Locked: true}, {Empty: true}},
		Pool:      []viewmodel.Tile{{Empty: true}, {ID: 1, Letter: "A"}},
	}
	if err := RoundFragment(data).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"2 / 10",
		"&lt;cat&gt;",
		`<span class="tile tile-locked">C</span>`,
		`hx-post="/sessions/s1/place"`,
		`hx-vals="{&#34;tile&#34;:1}"`,
		`data-feedback="idle"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRoundFragment_LockedHasNoActions(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.RoundFragment{
		SessionID: "s1",
		Locked:    true,
		Answer:    "CAT",
		Slots:     []viewmodel.Tile{{ID: 0, Letter: "C"}, {ID: 1, Letter: "A"}, {ID: 2, Letter: "T"}},
	}
	if err := RoundFragment(data).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "hx-post") {
		t.Errorf("locked round should not post: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `<p class="answer">CAT</p>`) {
		t.Errorf("answer missing: %s", buf.String())
	}
}

func TestSummaryFragment(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.SummaryFragment{SessionID: "s1", Score: 600, Perfect: 6, Imperfect: 4, Total: 10, Elapsed: "1:30", XP: 60}
	if err := SummaryFragment(data).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"600", "6 / 10", "+60 XP", "/sessions/s1/finish", "1:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestHomePage(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.HomePage{Title: "Promjum", Decks: []viewmodel.DeckOption{{Name: "en", Label: "Everyday"}}}
	if err := HomePage(data).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<option value="en">Everyday</option>`) {
		t.Errorf("deck option missing: %s", buf.String())
	}
}

func TestRoundFragment_SlotTilesReturnByIndex(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.RoundFragment{
		SessionID: "s1",
		Slots:     []viewmodel.Tile{{ID: 4, Letter: "C", Locked: true}, {ID: 7, Letter: "A"}},
	}
	if err := RoundFragment(data).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	want := `<button class="tile" hx-post="/sessions/s1/return" hx-vals="{&#34;slot&#34;:1}">A</button>`
	if !strings.Contains(buf.String(), want) {
		t.Errorf("output missing %q:\n%s", want, buf.String())
	}
}

func TestSummaryFragment_CompletedHidesContinue(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.SummaryFragment{SessionID: "s1", Completed: true}
	if err := SummaryFragment(data).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "/finish") {
		t.Errorf("completed summary offers finish: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `hx-post="/sessions/s1/restart"`) {
		t.Errorf("restart missing: %s", buf.String())
	}
}

func TestTileVals(t *testing.T) {
	if got := tileVals("tile", 3); got != `{"tile":3}` {
		t.Errorf("tileVals = %q", got)
	}
}
