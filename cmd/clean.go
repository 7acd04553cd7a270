package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petpost/petpost/internal/clipboard"
	"github.com/petpost/petpost/internal/config"
	"github.com/petpost/petpost/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and cached clipboard images",
	Long: `Removes petpost debug logs from /tmp and the images pasted from the
clipboard into ~/.petpost/cache. Settings and the stored session are kept.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	dir, err := config.CacheDir()
	if err != nil {
		return fmt.Errorf("error locating cache: %w", err)
	}
	return runCleanWithReader(os.Stdin, cmd.OutOrStdout(), dir)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer, cacheDir string) error {
	logs, _ := filepath.Glob(logger.LogGlob)
	cached, _ := filepath.Glob(filepath.Join(cacheDir, clipboard.CachePattern))

	if len(logs) == 0 && len(cached) == 0 {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will clean:")
	if len(logs) > 0 {
		fmt.Fprintf(out, "  - %d log file(s)\n", len(logs))
	}
	if len(cached) > 0 {
		fmt.Fprintf(out, "  - %d pasted image(s) in %s\n", len(cached), cacheDir)
	}

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}
	imagesCleared, err := clipboard.ClearCache(cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing cached images: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	if imagesCleared > 0 {
		fmt.Fprintf(out, "  - %d pasted image(s) removed\n", imagesCleared)
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(input)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
