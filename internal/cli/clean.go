package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/DevDeepakBhattarai/file-forge/internal/paths"
)

var (
	cleanDryRun    bool
	cleanOlderThan time.Duration
	cleanLogs      bool
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove staged clipboard outputs and old logs",
		Long: `Clipboard-mode conversions are written to a shared temp directory and
left behind after the clipboard moves on. clean sweeps files older than the
age cutoff from that directory, and from the logs directory with --logs.`,
		RunE: runClean,
	}

	cmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "List what would be removed without deleting")
	cmd.Flags().DurationVar(&cleanOlderThan, "older-than", 24*time.Hour, "Only remove files older than this")
	cmd.Flags().BoolVar(&cleanLogs, "logs", false, "Also sweep the logs directory")

	return cmd
}

type cleanResult struct {
	Removed    int   `json:"removed"`
	FreedBytes int64 `json:"freed_bytes"`
	Skipped    int   `json:"skipped"`
	DryRun     bool  `json:"dry_run"`
}

func runClean(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}
	cutoff := time.Now().Add(-cleanOlderThan)

	if err := sweepDir(paths.TempRoot(), cutoff, out, &result); err != nil {
		return err
	}

	if cleanLogs {
		pp, err := paths.Resolve(homeDir)
		if err != nil {
			return err
		}
		if err := sweepDir(pp.LogsDir, cutoff, out, &result); err != nil {
			return err
		}
	}

	return writeCleanResult(out, result)
}

// sweepDir removes regular files under root whose mtime is at or before
// cutoff. A missing root is fine; it just means nothing was ever staged.
func sweepDir(root string, cutoff time.Time, out io.Writer, result *cleanResult) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", root, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			result.Skipped++
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		removeFileEntry(filepath.Join(root, entry.Name()), out, result)
	}
	return nil
}

func removeFileEntry(path string, out io.Writer, result *cleanResult) {
	info, err := os.Stat(path)
	if err != nil {
		result.Skipped++
		return
	}
	size := info.Size()

	if cleanDryRun {
		fmt.Fprintf(out, "would remove %s (%s)\n", path, humanize.Bytes(uint64(size)))
		result.Removed++
		result.FreedBytes += size
		return
	}

	if err := os.Remove(path); err != nil {
		if !outputJSON {
			fmt.Fprintf(out, "error removing %s: %v\n", path, err)
		}
		result.Skipped++
		return
	}

	result.Removed++
	result.FreedBytes += size
	if !outputJSON {
		fmt.Fprintf(out, "removed %s (%s)\n", path, humanize.Bytes(uint64(size)))
	}
}

func writeCleanResult(out io.Writer, result cleanResult) error {
	if outputJSON {
		return json.NewEncoder(out).Encode(result)
	}

	action := "complete"
	if cleanDryRun {
		action = "(dry run)"
	}
	fmt.Fprintf(out, "\nClean %s: %d removed, %s freed, %d skipped\n",
		action, result.Removed, humanize.Bytes(uint64(result.FreedBytes)), result.Skipped)
	return nil
}
