package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locr-dev/locr/constants/lipgloss"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the review cache for locr",
	Long: `The 'reset-cache' command removes all cached review records.
Cached reviews are keyed by content fingerprint; clearing the cache forces
the next run to re-invoke the model for every file.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")
		handleResetCacheCommand(force, stats, cmd)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(force bool, showStats bool, cmd *cobra.Command) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	if showStats {
		fmt.Println(lipgloss.Cyan.Render("Cache Statistics:"))
		cacheStats, err := rootDependencies.Cache.Stats()
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: Could not show statistics: %v", err)))
			return
		}
		if enabled, ok := cacheStats["cache_enabled"].(bool); !ok || !enabled {
			fmt.Println("  Cache is disabled")
			return
		}
		if dir, ok := cacheStats["cache_dir"].(string); ok {
			fmt.Printf("  Cache Directory: %s\n", dir)
		}
		if files, ok := cacheStats["cache_files"].(int); ok {
			fmt.Printf("  Cached Reviews: %d\n", files)
		}
		if size, ok := cacheStats["total_size"].(int64); ok {
			fmt.Printf("  Total Size: %.2f KB\n", float64(size)/1024)
		}
		return
	}

	if !rootDependencies.Cache.Enabled() {
		fmt.Println(lipgloss.Yellow.Render("Cache is disabled. No cache to reset."))
		return
	}

	if !force {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Are you sure you want to reset the review cache? (y/N): ")
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled."))
			return
		}
	}

	if err := rootDependencies.Cache.Clear(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error resetting cache: %v", err)))
		return
	}

	fmt.Println(lipgloss.Green.Render("✓ Review cache has been successfully reset!"))
}
