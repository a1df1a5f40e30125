package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/locr-dev/locr/constants/lipgloss"
	"github.com/locr-dev/locr/review"
	"github.com/locr-dev/locr/review/models"
)

// handleReviewCommand processes every eligible file under the root
// directory, one file fully at a time. No per-file failure aborts the
// run; the exit status reflects run completion.
func handleReviewCommand(rootDependencies *RootDependencies, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootDir := rootDependencies.Config.CodebaseDir
	if len(args) > 0 {
		rootDir = args[0]
	}

	if _, err := os.Stat(rootDir); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Codebase directory %s does not exist", rootDir)))
		rootDependencies.Logger.Error().Str("dir", rootDir).Msg("codebase directory does not exist")
		return
	}

	rootDependencies.Logger.Info().Str("dir", rootDir).Msg("starting code review process")

	files, err := rootDependencies.Engine.CollectFiles(rootDir)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error scanning %s: %v", rootDir, err)))
		rootDependencies.Logger.Error().Err(err).Str("dir", rootDir).Msg("failed to scan codebase")
		return
	}
	if len(files) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No eligible files found to review."))
		return
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	summary := models.RunSummary{}

	for _, file := range files {
		if ctx.Err() != nil {
			fmt.Println(lipgloss.Yellow.Render("\nReview run interrupted."))
			break
		}

		spinnerInstance, _ := spinner.Start(fmt.Sprintf("Reviewing %s...", file))
		result, err := rootDependencies.Engine.ReviewFile(ctx, file)
		spinnerInstance.Stop()
		fmt.Print("\r")

		if err != nil {
			summary.FilesSkipped++
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Skipping %s: %v", file, err)))
			rootDependencies.Logger.Error().Err(err).Str("file", file).Msg("skipping file")
			continue
		}

		record := result.Record
		fmt.Println(review.FormatReviewTerminal(record))
		if record.Malformed {
			summary.MalformedReviews++
			fmt.Println(lipgloss.Yellow.Render("Model response could not be parsed; empty review saved."))
		}
		if result.CacheHit {
			summary.CacheHits++
			fmt.Println(lipgloss.Gray.Render("(served from cache)"))
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("Review saved for %s", file)))

		summary.FilesProcessed++
		summary.Bugs += len(record.Bugs)
		summary.QualityIssues += len(record.QualityIssues)
		summary.Suggestions += len(record.Suggestions)
		summary.SecurityConcerns += len(record.SecurityConcerns)
	}

	printRunSummary(summary)
	rootDependencies.TokenManagement.DisplayTokens(
		rootDependencies.Config.AIProviderConfig.Provider,
		rootDependencies.Config.AIProviderConfig.Model,
	)
	rootDependencies.Logger.Info().
		Int("processed", summary.FilesProcessed).
		Int("skipped", summary.FilesSkipped).
		Int("cache_hits", summary.CacheHits).
		Msg("code review process finished")
}

// printRunSummary prints per-category totals with one fixed color per
// category.
func printRunSummary(summary models.RunSummary) {
	fmt.Println()
	fmt.Printf("Files reviewed: %d (skipped: %d, cache hits: %d)\n",
		summary.FilesProcessed, summary.FilesSkipped, summary.CacheHits)
	fmt.Println(lipgloss.BugStyle.Render(fmt.Sprintf("  Bugs              : %d", summary.Bugs)))
	fmt.Println(lipgloss.QualityStyle.Render(fmt.Sprintf("  Quality Issues    : %d", summary.QualityIssues)))
	fmt.Println(lipgloss.SuggestionStyle.Render(fmt.Sprintf("  Suggestions       : %d", summary.Suggestions)))
	fmt.Println(lipgloss.SecurityStyle.Render(fmt.Sprintf("  Security Concerns : %d", summary.SecurityConcerns)))
	if summary.MalformedReviews > 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("  Unparsable responses: %d", summary.MalformedReviews)))
	}
}
