package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity resolved from MATHFORGE_AUTH_TOKEN",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		w := cmd.OutOrStdout()
		if !env.identity.SignedIn() {
			fmt.Fprintln(w, "Not signed in. You can browse topics; set MATHFORGE_AUTH_TOKEN to practise.")
			return nil
		}
		fmt.Fprintf(w, "User:   %s\n", env.identity.UserID)
		if env.identity.Email != "" {
			fmt.Fprintf(w, "Email:  %s\n", env.identity.Email)
		}

		counts, err := loadCounts(cmd.Context(), env)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		done := 0
		for _, n := range counts {
			done += n
		}
		stats, err := env.store.EventRepo().AnswerStats(cmd.Context(), env.identity.UserID)
		if err != nil {
			return fmt.Errorf("load answer stats: %w", err)
		}
		fmt.Fprintf(w, "Solved: %d problems\n", done)
		fmt.Fprintf(w, "Checks: %d (%d correct)\n", stats.Attempts, stats.Correct)
		return nil
	},
}
