package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"promjum/internal/game"
	"promjum/internal/progress"
	"promjum/internal/repository"
	"promjum/internal/scramble"
)

const quitCommand = ":q"

func newPlayCmd(a *app) *cobra.Command {
	var (
		deck  string
		words int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a scramble session in the terminal",
		Long: `Play a word-scramble session. Each turn shows the meaning and the
scrambled letters; type the whole word to answer or :q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.open(ctx)
			if err != nil {
				return err
			}
			src := game.Sources{repository.NewVocabularyRepository(db), game.StarterDeck{}}
			items, err := src.Words(ctx, deck)
			if err != nil {
				return errors.Wrapf(err, "load deck %q", deck)
			}
			if words <= 0 {
				words = a.cfg.SessionWords
			}

			xp := progress.NewXPService(repository.NewXPRepository(db))
			reviews := progress.NewReviewService(repository.NewReviewRepository(db))
			results := progress.NewResultService(repository.NewResultRepository(db))
			dispatcher := progress.NewDispatcher(xp, reviews, a.cfg.TelemetryTimeout)

			sessionID := uuid.NewString()
			awarded := new(atomic.Int64)
			sess, err := scramble.NewSession(items, scramble.Options{
				MaxWords:  words,
				Telemetry: dispatcher.Telemetry(a.learner, sessionID, func(n int) { awarded.Add(int64(n)) }),
			})
			if err != nil {
				return err
			}

			p := &player{sess: sess, in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout(), xp: awarded}
			if err := p.run(); err != nil {
				return err
			}
			dispatcher.Wait()
			p.collectXP()

			if !sess.Finished() {
				fmt.Fprintln(p.out, "Session abandoned.")
				return nil
			}
			res, err := sess.Complete()
			if err != nil {
				return err
			}
			if err := results.RecordResult(ctx, a.learner, sessionID, res); err != nil {
				log.Warn().Err(err).Str("session", sessionID).Msg("record session result")
			}
			printResult(p.out, res, len(sess.Words()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&deck, "deck", "d", game.DefaultDeck, "deck to play")
	cmd.Flags().IntVarP(&words, "words", "w", 0, "words per session (default from SESSION_WORDS)")
	return cmd
}

// player drives a session from line input. Follow-ups run as soon as an
// answer is checked instead of after the pacing delays.
type player struct {
	sess *scramble.Session
	in   *bufio.Scanner
	out  io.Writer
	xp   *atomic.Int64
}

func (p *player) run() error {
	for !p.sess.Finished() {
		p.collectXP()
		p.show()
		fmt.Fprint(p.out, "> ")
		if !p.in.Scan() {
			fmt.Fprintln(p.out)
			return p.in.Err()
		}
		line := strings.TrimSpace(p.in.Text())
		if line == quitCommand {
			return nil
		}
		if line == "" {
			continue
		}
		step, err := p.answer(line)
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)
			continue
		}
		p.follow(step)
	}
	return nil
}

func (p *player) collectXP() {
	p.sess.AddXP(int(p.xp.Swap(0)))
}

func (p *player) show() {
	snap := p.sess.Snapshot()
	round := snap.Round
	fmt.Fprintf(p.out, "\nWord %d/%d  Score %d\n", snap.Index+1, snap.Total, snap.Score)
	fmt.Fprintf(p.out, "Meaning: %s\n", round.Meaning)
	fmt.Fprintf(p.out, "Answer:  %s\n", letters(round.Slots, "_"))
	fmt.Fprintf(p.out, "Letters: %s\n", letters(round.Pool, ""))
}

func letters(tiles []scramble.TileView, hole string) string {
	parts := make([]string, 0, len(tiles))
	for _, t := range tiles {
		switch {
		case t.ID != scramble.NoTile:
			parts = append(parts, t.Letter)
		case hole != "":
			parts = append(parts, hole)
		}
	}
	return strings.Join(parts, " ")
}

// answer places tiles to spell word. Hint letters already in the answer row
// are kept and the typed letter at that position is ignored. On any failure
// the tiles placed so far go back to the pool.
func (p *player) answer(word string) (scramble.Step, error) {
	want := scramble.CleanWord(word)
	round := p.sess.Round()
	if len(want) != round.Length() {
		return scramble.Step{}, fmt.Errorf("the word has %d letters", round.Length())
	}
	var placed []int
	undo := func() {
		for i := len(placed) - 1; i >= 0; i-- {
			_ = p.sess.Return(placed[i])
		}
	}
	var step scramble.Step
	for i, letter := range want {
		if round.Slots()[i] != scramble.NoTile {
			continue
		}
		id, ok := findTile(round, letter)
		if !ok {
			undo()
			return scramble.Step{}, fmt.Errorf("no %c left to place", letter)
		}
		var err error
		step, err = p.sess.Place(id)
		if err != nil {
			undo()
			return scramble.Step{}, err
		}
		placed = append(placed, i)
	}
	return step, nil
}

func findTile(round *scramble.Round, letter rune) (scramble.TileID, bool) {
	for _, id := range round.Pool() {
		if t, ok := round.Tile(id); ok && t.Letter == letter {
			return id, true
		}
	}
	return scramble.NoTile, false
}

func (p *player) follow(step scramble.Step) {
	round := p.sess.Round()
	switch step.Outcome {
	case scramble.OutcomeCorrect:
		fmt.Fprintln(p.out, "Correct!")
		p.sess.Advance(step.Epoch)
	case scramble.OutcomeRetry:
		fmt.Fprintf(p.out, "Not quite. %d letters revealed.\n", round.HintsRevealed())
		p.sess.Retry(step.Epoch)
	case scramble.OutcomeRevealed:
		fmt.Fprintf(p.out, "The word was %s.\n", round.Target())
		p.sess.Advance(step.Epoch)
	}
}

func printResult(out io.Writer, res scramble.Result, total int) {
	fmt.Fprintln(out, "\nSession complete")
	fmt.Fprintf(out, "Score:   %d\n", res.Score)
	fmt.Fprintf(out, "Perfect: %d/%d\n", res.PerfectWords, total)
	fmt.Fprintf(out, "Time:    %ds\n", res.ElapsedSeconds)
	fmt.Fprintf(out, "XP:      +%d\n", res.XPGained)
}
