package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/DevDeepakBhattarai/file-forge/internal/config"
	"github.com/DevDeepakBhattarai/file-forge/internal/paths"
	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check tool, config and clipboard health",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, err := paths.Resolve(homeDir)
	if err != nil {
		return err
	}
	if err := config.LoadEnv(pp.EnvFile); err != nil {
		return err
	}

	cfg, cfgErr := config.Load(pp.ConfigFile)

	var overrides map[tools.Kind]string
	if cfgErr == nil {
		overrides = toolOverrides(cfg.Tools)
	}
	registry := tools.NewRegistry(tools.WithOverrides(overrides))

	checks := []healthCheck{
		checkTools(ctx, registry),
		checkConfig(cfg, cfgErr),
		checkClipboard(),
		checkTempDir(),
	}

	return writeDoctorResult(cmd, pp.Root, checks)
}

func checkTools(ctx context.Context, registry *tools.Registry) healthCheck {
	statuses := registry.Statuses(ctx)

	var available []string
	var missing []string
	for _, st := range statuses {
		if st.Available {
			label := st.Name
			if st.Version != "" {
				label += " " + st.Version
			}
			available = append(available, label)
		} else {
			missing = append(missing, st.Name)
		}
	}

	switch {
	case len(missing) == 0:
		return healthCheck{Name: "Tools", Status: "ok", Summary: joinComma(available)}
	case len(available) == 0:
		return healthCheck{Name: "Tools", Status: "error", Summary: "no conversion tools found; run `fileforge tools` for install hints"}
	default:
		return healthCheck{
			Name:    "Tools",
			Status:  "warning",
			Summary: fmt.Sprintf("%s available; missing %s", joinComma(available), joinComma(missing)),
		}
	}
}

func checkConfig(cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	var warnings, errors int
	for _, v := range cfg.Validate() {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errors++
		}
	}

	summary := fmt.Sprintf("destination %s", cfg.Convert.Destination)
	if n := len(cfg.PreferredOutputs); n > 0 {
		summary += fmt.Sprintf(", %d output rankings", n)
	}

	if errors > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %d errors", summary, errors)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %d warnings", summary, warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func checkClipboard() healthCheck {
	switch runtime.GOOS {
	case "darwin", "windows":
		// pbcopy/osascript and powershell ship with the OS.
		return healthCheck{Name: "Clipboard", Status: "ok", Summary: "built-in helpers"}
	case "linux":
		for _, helper := range []string{"xclip", "wl-paste"} {
			if _, err := exec.LookPath(helper); err == nil {
				return healthCheck{Name: "Clipboard", Status: "ok", Summary: helper}
			}
		}
		return healthCheck{
			Name:    "Clipboard",
			Status:  "warning",
			Summary: "no helper found; install xclip or wl-clipboard for clipboard destinations",
		}
	default:
		return healthCheck{Name: "Clipboard", Status: "warning", Summary: "unsupported platform"}
	}
}

func checkTempDir() healthCheck {
	root := paths.TempRoot()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return healthCheck{Name: "Temp dir", Status: "error", Summary: err.Error()}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return healthCheck{Name: "Temp dir", Status: "error", Summary: err.Error()}
	}

	var count int
	var size int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		count++
		if info, err := entry.Info(); err == nil {
			size += info.Size()
		}
	}

	if count == 0 {
		return healthCheck{Name: "Temp dir", Status: "ok", Summary: root}
	}
	return healthCheck{
		Name:    "Temp dir",
		Status:  "ok",
		Summary: fmt.Sprintf("%s (%d staged files, %s; `fileforge clean` removes old ones)", root, count, humanize.Bytes(uint64(size))),
	}
}

func writeDoctorResult(cmd *cobra.Command, root string, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("FILEFORGE HEALTH:")+" "+root)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func joinComma(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += ", " + item
	}
	return result
}
