package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"promjum/internal/progress"
	"promjum/internal/repository"
)

func newDueCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "due",
		Short: "Show words due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			cards, err := progress.NewReviewService(repository.NewReviewRepository(db)).Due(cmd.Context(), a.learner, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "No words due for review.")
				return nil
			}
			fmt.Fprintf(out, "%d words due for review:\n\n", len(cards))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Word\tReps\tEase\tInterval\tNext Review")
			fmt.Fprintln(w, "----\t----\t----\t--------\t-----------")
			for _, c := range cards {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%dd\t%s\n",
					c.WordID, c.Repetitions, c.EaseFactor, c.Interval, c.NextReview.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of words")
	return cmd
}
