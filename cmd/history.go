package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathforge/mathforge/internal/screens/history"
	"github.com/mathforge/mathforge/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your recent practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		if err := env.requireSignIn(); err != nil {
			return err
		}

		records, err := env.store.EventRepo().RecentSessions(cmd.Context(), env.identity.UserID, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		records = history.Finished(records)
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}

		w := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(w, "No practice sessions yet.")
			return nil
		}

		fmt.Fprintf(w, "%-19s  %-28s  %-9s  %7s  %7s  %5s  %6s\n",
			"Finished", "Subtopic", "Status", "Correct", "Marks", "Hints", "Time")
		fmt.Fprintln(w, strings.Repeat("─", 96))
		for _, r := range records {
			status := "completed"
			if r.Action == store.ActionAbandon {
				status = "abandoned"
			}
			fmt.Fprintf(w, "%-19s  %-28s  %-9s  %3d/%-3d  %3d/%-3d  %5d  %6s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.SubtopicID, 28),
				status,
				r.Correct, r.Problems,
				r.MarksEarned, r.MarksAvailable,
				r.HintsUsed,
				formatDuration(r.DurationSecs))
		}
		return nil
	},
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
