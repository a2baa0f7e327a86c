package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear your completed problems",
	Long:  "Deletes every completion recorded for the signed-in user. Session history is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		if err := env.requireSignIn(); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(w, "Reset all progress for %s? [y/N] ", env.identity.DisplayName())
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(w, "Aborted.")
				return nil
			}
		}

		n, err := env.store.ProgressRepo().Reset(cmd.Context(), env.identity.UserID)
		if err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		env.logger.Info("progress reset", zap.String("user_id", env.identity.UserID), zap.Int("removed", n))
		fmt.Fprintf(w, "Removed %d completed problems.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
