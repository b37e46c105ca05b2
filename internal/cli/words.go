package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"promjum/internal/game"
	"promjum/internal/repository"
	"promjum/internal/scramble"
)

func newWordsCmd(a *app) *cobra.Command {
	var deck string
	words := &cobra.Command{
		Use:   "words",
		Short: "Manage vocabulary",
	}
	words.PersistentFlags().StringVarP(&deck, "deck", "d", game.DefaultDeck, "deck name")

	add := &cobra.Command{
		Use:   "add [word] [meaning]",
		Short: "Add a word to a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := scramble.VocabularyItem{Word: args[0], Meaning: args[1], IsUserFlashcard: true}
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			item, err = repository.NewVocabularyRepository(db).Add(cmd.Context(), deck, item)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s (%s)\n", item.Word, deck, item.ID)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the words in a deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			items, err := repository.NewVocabularyRepository(db).List(cmd.Context(), deck)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Deck %s is empty.\n", deck)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWord\tMeaning")
			fmt.Fprintln(w, "--\t----\t-------")
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Word, item.Meaning)
			}
			return w.Flush()
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import word|meaning lines into a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			prefix := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			items, err := game.ParseDeck(prefix, f)
			if err != nil {
				return err
			}
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			n, err := repository.NewVocabularyRepository(db).Seed(cmd.Context(), deck, items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d words into %s\n", n, len(items), deck)
			return nil
		},
	}

	words.AddCommand(add, list, importCmd)
	return words
}
