package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mathforge/mathforge/internal/authoring"
	"github.com/mathforge/mathforge/internal/catalog"
	"github.com/mathforge/mathforge/internal/llm"
)

var draftCmd = &cobra.Command{
	Use:   "draft <subtopic-id>",
	Short: "Draft new problems for a subtopic with the configured LLM",
	Long: `Asks the configured LLM provider for new problems, validates them and
writes a problem bank file. Point MATHFORGE_BANK at the file to practise them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		out, _ := cmd.Flags().GetString("output")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		llmCfg, err := llm.Resolve()
		if err != nil {
			return err
		}
		provider, err := llm.NewProvider(cmd.Context(), llmCfg, env.store.EventRepo(), llm.WithLogger(env.logger))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), llmCfg.Timeout)
		defer cancel()

		drafter := authoring.New(provider, env.catalog, authoring.DefaultConfig(), env.logger)
		problems, err := drafter.Draft(ctx, args[0], n)
		if err != nil {
			return fmt.Errorf("draft problems: %w", err)
		}
		env.logger.Info("problems drafted",
			zap.String("subtopic_id", args[0]),
			zap.Int("requested", n),
			zap.Int("accepted", len(problems)),
			zap.String("model", provider.ModelID()))

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := catalog.WriteBank(w, args[0], problems); err != nil {
			return fmt.Errorf("write bank: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Drafted %d of %d problems for %s.\n", len(problems), n, args[0])
		return nil
	},
}

func init() {
	draftCmd.Flags().IntP("count", "n", 5, "Number of problems to request")
	draftCmd.Flags().StringP("output", "o", "", "Write the bank file here instead of stdout")
}
