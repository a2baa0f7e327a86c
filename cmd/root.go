package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mathforge/mathforge/internal/app"
	"github.com/mathforge/mathforge/internal/auth"
	"github.com/mathforge/mathforge/internal/catalog"
	"github.com/mathforge/mathforge/internal/config"
	"github.com/mathforge/mathforge/internal/logging"
	"github.com/mathforge/mathforge/internal/screen"
	"github.com/mathforge/mathforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathforge",
	Short: "A-Level and IB maths practice in the terminal",
	Long:  "MathForge walks you through exam-style problem sets by topic and tracks how much of each topic you have completed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return app.Run(app.Options{Deps: env.deps()})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHFORGE_DB)")
	rootCmd.PersistentFlags().String("env", "", "Load environment variables from this file instead of ./.env")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment (and the --env file when given) and
// applies the --db override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if p, _ := cmd.Flags().GetString("env"); p != "" {
		cfg, err = config.LoadFile(p)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// cliEnv bundles everything a command needs once configuration is resolved.
type cliEnv struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	catalog  *catalog.Catalog
	identity auth.Identity
}

// openEnv resolves config, logger, identity, catalog and store in that
// order. The caller must Close the result.
func openEnv(cmd *cobra.Command) (*cliEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	identity, err := auth.Resolve(cfg.Auth.Token, cfg.Auth.Secret)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("MATHFORGE_AUTH_TOKEN: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	if err := config.EnsureDir(cfg.DBPath); err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger.Debug("environment ready",
		zap.String("db", cfg.DBPath),
		zap.Bool("signed_in", identity.SignedIn()),
		zap.Int("subtopics", len(cat.Leaves())))

	return &cliEnv{cfg: cfg, logger: logger, store: st, catalog: cat, identity: identity}, nil
}

// loadCatalog returns the built-in catalog, extended with the bank file named
// by MATHFORGE_BANK when set.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if cfg.BankPath == "" {
		return cat, nil
	}
	extra, err := catalog.LoadBank(cfg.BankPath)
	if err != nil {
		return nil, fmt.Errorf("MATHFORGE_BANK: %w", err)
	}
	merged, err := cat.Merge(extra)
	if err != nil {
		return nil, fmt.Errorf("MATHFORGE_BANK: %w", err)
	}
	return merged, nil
}

func (e *cliEnv) deps() screen.Deps {
	return screen.Deps{
		Catalog:  e.catalog,
		Events:   e.store.EventRepo(),
		Progress: e.store.ProgressRepo(),
		Identity: e.identity,
		Logger:   e.logger,
	}
}

// requireSignIn returns an error naming the variable to set when the user is
// anonymous.
func (e *cliEnv) requireSignIn() error {
	if !e.identity.SignedIn() {
		return fmt.Errorf("not signed in: set MATHFORGE_AUTH_TOKEN to the token from your MathForge account")
	}
	return nil
}

func (e *cliEnv) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close database", zap.Error(err))
	}
	_ = e.logger.Sync()
}
