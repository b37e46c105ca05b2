package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"promjum/internal/scramble"
)

type fakeSource struct {
	items []scramble.VocabularyItem
	err   error
}

func (f fakeSource) Words(context.Context, string) ([]scramble.VocabularyItem, error) {
	return f.items, f.err
}

type fakeResults struct {
	mu    sync.Mutex
	saved []scramble.Result
}

func (f *fakeResults) RecordResult(_ context.Context, _, _ string, res scramble.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, res)
	return nil
}

type fakeProgress struct{ xp int }

func (p fakeProgress) Telemetry(_, _ string, onXP func(int)) scramble.Telemetry {
	return xpTelemetry{xp: p.xp, onXP: onXP}
}

type xpTelemetry struct {
	xp   int
	onXP func(int)
}

func (t xpTelemetry) Activity(scramble.Activity) { go t.onXP(t.xp) }
func (t xpTelemetry) Review(scramble.Review)     {}

var catDeck = fakeSource{items: []scramble.VocabularyItem{{ID: "cat", Word: "cat", Meaning: "แมว"}}}

var fastPacing = scramble.Pacing{Retry: time.Millisecond, Advance: time.Millisecond, Reveal: time.Millisecond}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

// solve places the tiles that spell word, reading the layout from snapshots.
func solve(t *testing.T, s *Store, id, word string) Snapshot {
	t.Helper()
	g, _ := s.Get(id)
	var snap Snapshot
	for i, letter := range word {
		pool := g.Snapshot().Session.Round.Pool
		found := false
		for _, tile := range pool {
			if tile.ID != scramble.NoTile && tile.Letter == string(letter) {
				var err error
				snap, err = s.Place(id, tile.ID)
				if err != nil {
					t.Fatalf("Place letter %d: %v", i, err)
				}
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("letter %q not in pool", letter)
		}
	}
	return snap
}

func TestNewStore(t *testing.T) {
	s := NewStore(catDeck, Config{})
	if s == nil {
		t.Fatal("NewStore returned nil")
	}
}

func TestStore_Start_Get(t *testing.T) {
	s := NewStore(catDeck, Config{})
	g, err := s.Start(context.Background(), "learner-1", "en")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if g.ID == "" {
		t.Error("game ID is empty")
	}
	if g.Status() != StatusPlaying {
		t.Errorf("status %q, want %q", g.Status(), StatusPlaying)
	}
	got, ok := s.Get(g.ID)
	if !ok || got != g {
		t.Fatal("Get did not return the started game")
	}
	if _, ok := s.Get("nonexistent"); ok {
		t.Error("Get should return false for missing ID")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStore_StartErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewStore(fakeSource{err: boom}, Config{}).Start(context.Background(), "l", "en"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	empty := fakeSource{items: []scramble.VocabularyItem{{ID: "x", Word: "123"}}}
	if _, err := NewStore(empty, Config{}).Start(context.Background(), "l", "en"); !errors.Is(err, scramble.ErrNoPlayableWords) {
		t.Errorf("err = %v, want ErrNoPlayableWords", err)
	}
}

func TestStore_PublishesSnapshots(t *testing.T) {
	s := NewStore(catDeck, Config{})
	g, _ := s.Start(context.Background(), "l", "en")
	hub, ok := s.Broadcaster(g.ID)
	if !ok {
		t.Fatal("no broadcaster for game")
	}
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	tile := g.Snapshot().Session.Round.Pool[0].ID
	if _, err := s.Place(g.ID, tile); err != nil {
		t.Fatal(err)
	}
	ev := <-ch
	if ev.Name != EventSnapshot || ev.Data == "" {
		t.Errorf("event %+v, want snapshot with data", ev)
	}
}

func TestStore_PlayToFinish(t *testing.T) {
	results := &fakeResults{}
	s := NewStore(catDeck, Config{Pacing: fastPacing}, WithResults(results), WithProgress(fakeProgress{xp: 10}))
	g, _ := s.Start(context.Background(), "l", "en")

	snap := solve(t, s, g.ID, "CAT")
	if snap.Session.Score != scramble.PointsPerWord {
		t.Errorf("score %d, want %d", snap.Session.Score, scramble.PointsPerWord)
	}
	waitFor(t, func() bool { return g.Status() == StatusFinished })
	waitFor(t, func() bool { return g.Snapshot().Session.XP == 10 })

	res, err := s.Finish(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if res.Score != 100 || res.PerfectWords != 1 || res.XPGained != 10 {
		t.Errorf("result %+v", res)
	}
	if len(results.saved) != 1 {
		t.Errorf("saved %d results, want 1", len(results.saved))
	}
	if _, err := s.Finish(context.Background(), g.ID); !errors.Is(err, scramble.ErrAlreadyCompleted) {
		t.Errorf("second Finish err = %v", err)
	}
	if g.Status() != StatusCompleted {
		t.Errorf("status %q, want %q", g.Status(), StatusCompleted)
	}
}

func TestStore_ExitCancelsFollowUps(t *testing.T) {
	pacing := scramble.Pacing{Retry: 50 * time.Millisecond, Advance: 50 * time.Millisecond, Reveal: 50 * time.Millisecond}
	s := NewStore(catDeck, Config{Pacing: pacing})
	g, _ := s.Start(context.Background(), "l", "en")
	solve(t, s, g.ID, "CAT")
	if err := s.Exit(g.ID); err != nil {
		t.Fatal(err)
	}
	time.Sleep(120 * time.Millisecond)
	if g.Status() != StatusPlaying {
		t.Errorf("status %q after exit, want the advance cancelled", g.Status())
	}
	if _, ok := s.Get(g.ID); ok {
		t.Error("game still registered after Exit")
	}
	if err := s.Exit(g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Exit err = %v, want ErrNotFound", err)
	}
	if _, err := s.Place(g.ID, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Place after Exit err = %v, want ErrNotFound", err)
	}
}

func TestStore_RestartIgnoresOldFollowUps(t *testing.T) {
	pacing := scramble.Pacing{Retry: 30 * time.Millisecond, Advance: 30 * time.Millisecond, Reveal: 30 * time.Millisecond}
	two := fakeSource{items: []scramble.VocabularyItem{{ID: "cat", Word: "cat"}, {ID: "cat2", Word: "cat"}}}
	s := NewStore(two, Config{Pacing: pacing})
	g, _ := s.Start(context.Background(), "l", "en")
	solve(t, s, g.ID, "CAT")
	snap, err := s.Restart(context.Background(), g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.ID != g.ID || snap.Session.Score != 0 {
		t.Errorf("restart snapshot %+v", snap)
	}
	time.Sleep(80 * time.Millisecond)
	if idx := g.Snapshot().Session.Index; idx != 0 {
		t.Errorf("index %d after restart, want the stale advance ignored", idx)
	}
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	s := NewStore(catDeck, Config{TTL: time.Minute}, WithClock(clock))
	g, _ := s.Start(context.Background(), "l", "en")
	if n := s.Sweep(); n != 0 {
		t.Fatalf("swept %d fresh games", n)
	}
	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()
	if n := s.Sweep(); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, ok := s.Get(g.ID); ok {
		t.Error("idle game still registered")
	}
}

// heldProgress keeps XP callbacks so tests decide when the award lands.
type heldProgress struct{ pending chan func(int) }

func newHeldProgress() heldProgress { return heldProgress{pending: make(chan func(int), 8)} }

func (p heldProgress) Telemetry(_, _ string, onXP func(int)) scramble.Telemetry {
	return heldTelemetry{p: p, onXP: onXP}
}

type heldTelemetry struct {
	p    heldProgress
	onXP func(int)
}

func (t heldTelemetry) Activity(scramble.Activity) { t.p.pending <- t.onXP }
func (t heldTelemetry) Review(scramble.Review)     {}

func TestStore_LateXPSkipsRestartedSession(t *testing.T) {
	progress := newHeldProgress()
	s := NewStore(catDeck, Config{Pacing: fastPacing}, WithProgress(progress))
	g, _ := s.Start(context.Background(), "l", "en")
	solve(t, s, g.ID, "CAT")
	award := <-progress.pending

	if _, err := s.Restart(context.Background(), g.ID); err != nil {
		t.Fatal(err)
	}
	award(10)
	if xp := g.Snapshot().Session.XP; xp != 0 {
		t.Errorf("restarted session XP = %d, want 0", xp)
	}
}

func TestStore_LateXPAfterFinishIsDropped(t *testing.T) {
	results := &fakeResults{}
	progress := newHeldProgress()
	s := NewStore(catDeck, Config{Pacing: fastPacing}, WithProgress(progress), WithResults(results))
	g, _ := s.Start(context.Background(), "l", "en")
	solve(t, s, g.ID, "CAT")
	award := <-progress.pending
	waitFor(t, func() bool { return g.Status() == StatusFinished })

	res, err := s.Finish(context.Background(), g.ID)
	if err != nil {
		t.Fatal(err)
	}
	award(10)
	snap := g.Snapshot()
	if snap.Session.XP != res.XPGained {
		t.Errorf("live XP %d differs from finished result XP %d", snap.Session.XP, res.XPGained)
	}
	if len(results.saved) != 1 || results.saved[0].XPGained != res.XPGained {
		t.Errorf("saved %+v, want XP %d", results.saved, res.XPGained)
	}
}

func TestGame_AddXP(t *testing.T) {
	s := NewStore(catDeck, Config{})
	g, _ := s.Start(context.Background(), "l", "en")
	if g.AddXP(nil, 5) {
		t.Error("XP credited to a session the game does not own")
	}
	g.mu.Lock()
	sess := g.session
	g.mu.Unlock()
	if !g.AddXP(sess, 5) {
		t.Fatal("XP for the current session was dropped")
	}
	if xp := g.Snapshot().Session.XP; xp != 5 {
		t.Errorf("XP = %d, want 5", xp)
	}
}
