package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/locr-dev/locr/config"
	"github.com/locr-dev/locr/constants/lipgloss"
	"github.com/locr-dev/locr/providers"
	"github.com/locr-dev/locr/review"
	review_contracts "github.com/locr-dev/locr/review/contracts"
	"github.com/locr-dev/locr/token_management"
	tm_contracts "github.com/locr-dev/locr/token_management/contracts"
)

// RootCmd: locr [root-dir]
var rootCmd = &cobra.Command{
	Use:   "locr [root-dir]",
	Short: "Review a codebase with a locally hosted language model.",
	Long: `locr walks a codebase directory, sends each eligible source file to a
locally hosted language model, and turns the model's free-form critique into
structured review records: a JSON artifact and a human-readable text artifact
per file, plus a color-differentiated summary in the terminal. Reviews are
cached by content fingerprint so unchanged files never re-invoke the model.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println("locr version " + config.DefaultConfig.Version)
			return
		}
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleReviewCommand(rootDependencies, args)
	},
}

// RootDependencies holds the wired collaborators every command uses.
type RootDependencies struct {
	Cwd             string
	Config          *config.Config
	Logger          zerolog.Logger
	Cache           *review.ReviewCache
	Engine          review_contracts.IReviewEngine
	TokenManagement tm_contracts.ITokenManagement
}

// handleRootCommand loads configuration and builds the dependency graph
// shared by the root command and its subcommands.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigs(cmd.Root(), cwd)
	logger := newLogger(cfg.LogFile)

	tokenManagement := token_management.NewTokenManager()

	provider, err := providers.ReviewProviderFactory(cfg.AIProviderConfig, tokenManagement)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return nil
	}

	cache, err := review.NewReviewCache(cfg.CacheDir, cfg.EnableCache)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error initializing cache: %v", err)))
		return nil
	}

	engine := review.NewReviewEngine(provider, cache, review.EngineOptions{
		OutputDir:  cfg.OutputDir,
		Extensions: cfg.Extensions,
		MaxTokens:  cfg.AIProviderConfig.MaxTokens,
	}, logger)

	return &RootDependencies{
		Cwd:             cwd,
		Config:          cfg,
		Logger:          logger,
		Cache:           cache,
		Engine:          engine,
		TokenManagement: tokenManagement,
	}
}

// newLogger writes run events to the configured log file, falling back
// to stderr when the file cannot be opened.
func newLogger(logFile string) zerolog.Logger {
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			return zerolog.New(file).With().Timestamp().Logger()
		}
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
