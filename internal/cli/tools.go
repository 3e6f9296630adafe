package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Show which converter tools were found",
		RunE:  runTools,
	}
}

func runTools(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, cfg, err := resolveAppConfig()
	if err != nil {
		return err
	}

	registry := tools.NewRegistry(tools.WithOverrides(toolOverrides(cfg.Tools)))
	statuses := registry.Statuses(ctx)

	if outputJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printToolsTable(cmd, statuses)
	return nil
}

func printToolsTable(cmd *cobra.Command, statuses []tools.Status) {
	faint := lipgloss.NewStyle().Faint(true)

	cmd.Printf("%-8s %-14s %-12s %-7s %s\n", "KIND", "TOOL", "VERSION", "FOUND", "PATH")
	for _, st := range statuses {
		found := "no"
		if st.Available {
			found = "yes"
		}
		path := st.Path
		if path == "" {
			path = "(missing)"
		}
		version := st.Version
		if version == "" {
			version = "-"
		}
		cmd.Printf("%-8s %-14s %-12s %-7s %s\n", st.Kind, st.Name, version, found, path)
		if st.Available {
			cmd.Println(faint.Render(fmt.Sprintf("         reads %d formats, writes %d", st.Inputs, st.Outputs)))
		}
		for _, hint := range st.Hints {
			cmd.Println(faint.Render("         " + hint))
		}
	}
}
