package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathforge/mathforge/internal/app"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <subtopic-id>",
	Short: "Start a practice session for a subtopic",
	Long:  "Opens the TUI directly in a practice session. Run `mathforge topics` to list subtopic ids.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.requireSignIn(); err != nil {
			return err
		}
		if _, err := env.catalog.Problems(args[0]); err != nil {
			return fmt.Errorf("subtopic %q: %w", args[0], err)
		}
		return app.Run(app.Options{Deps: env.deps(), Subtopic: args[0]})
	},
}
