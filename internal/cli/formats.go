package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats [tool]",
		Short: "Show the formats each tool can read and write",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFormats,
	}
}

type formatListing struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name"`
	Available bool     `json:"available"`
	Version   string   `json:"version,omitempty"`
	Inputs    []string `json:"inputs"`
	Outputs   []string `json:"outputs"`
}

func runFormats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, cfg, err := resolveAppConfig()
	if err != nil {
		return err
	}

	registry := tools.NewRegistry(tools.WithOverrides(toolOverrides(cfg.Tools)))

	kinds := tools.Kinds()
	if len(args) == 1 {
		kind, ok := tools.ParseKind(args[0])
		if !ok {
			return fmt.Errorf("unknown tool %q (expected image, media, markup or office)", args[0])
		}
		kinds = []tools.Kind{kind}
	}

	listings := make([]formatListing, 0, len(kinds))
	for _, kind := range kinds {
		listing := formatListing{Kind: kind.String(), Name: kind.DisplayName()}
		if desc, ok := registry.Resolve(ctx, kind); ok {
			listing.Available = true
			listing.Version = desc.Version
			listing.Inputs = desc.Inputs
			listing.Outputs = desc.Outputs
		}
		listings = append(listings, listing)
	}

	if outputJSON {
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(listings) == 1 {
		printFormatDetail(cmd, listings[0])
		return nil
	}

	printFormatCounts(cmd, listings)
	return nil
}

func printFormatDetail(cmd *cobra.Command, listing formatListing) {
	bold := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)

	headline := bold.Render(listing.Name)
	if listing.Version != "" {
		headline += " v" + listing.Version
	}
	cmd.Println(headline)

	if !listing.Available {
		cmd.Println(faint.Render("  not installed"))
		return
	}

	cmd.Printf("\nreads (%d):\n", len(listing.Inputs))
	for _, line := range wrapWords(listing.Inputs, 72) {
		cmd.Println("  " + line)
	}
	if len(listing.Inputs) == 0 {
		cmd.Println(faint.Render("  (listing unavailable; the tool decides at run time)"))
	}

	cmd.Printf("\nwrites (%d):\n", len(listing.Outputs))
	for _, line := range wrapWords(listing.Outputs, 72) {
		cmd.Println("  " + line)
	}
	if len(listing.Outputs) == 0 {
		cmd.Println(faint.Render("  (listing unavailable; the tool decides at run time)"))
	}

	kind, ok := tools.ParseKind(listing.Kind)
	if !ok {
		return
	}
	if kind == tools.KindMedia {
		cmd.Printf("\nsuggested output: %s (video), %s (audio)\n",
			formats.PreferredOutput(formats.CategoryVideo, listing.Outputs),
			formats.PreferredOutput(formats.CategoryAudio, listing.Outputs))
		return
	}
	cmd.Printf("\nsuggested output: %s\n", formats.PreferredOutput(kind.Category(""), listing.Outputs))
}

func printFormatCounts(cmd *cobra.Command, listings []formatListing) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tTOOL\tREADS\tWRITES")
	for _, l := range listings {
		reads, writes := "-", "-"
		if l.Available {
			reads = fmt.Sprintf("%d", len(l.Inputs))
			writes = fmt.Sprintf("%d", len(l.Outputs))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Kind, l.Name, reads, writes)
	}
	w.Flush()
}

// wrapWords joins words into lines no wider than width.
func wrapWords(words []string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
