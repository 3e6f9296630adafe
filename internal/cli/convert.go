package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/DevDeepakBhattarai/file-forge/internal/clipboard"
	"github.com/DevDeepakBhattarai/file-forge/internal/config"
	"github.com/DevDeepakBhattarai/file-forge/internal/convert"
	"github.com/DevDeepakBhattarai/file-forge/internal/logx"
	"github.com/DevDeepakBhattarai/file-forge/internal/paths"
	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
	"github.com/DevDeepakBhattarai/file-forge/internal/tui"
	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

var (
	convertTo            string
	convertOutput        string
	convertDest          string
	convertOverwrite     bool
	convertJobs          int
	convertPick          bool
	convertFromClipboard bool
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert files with whichever tool can read them",
		RunE:  runConvert,
	}

	cmd.Flags().StringVarP(&convertTo, "to", "t", "", "Output extension (default: per-category suggestion)")
	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Directory for converted files (default: alongside each input)")
	cmd.Flags().IntVar(&convertJobs, "jobs", 2, "Maximum conversions running at once")
	cmd.Flags().BoolVar(&convertPick, "pick", false, "Choose the output format interactively")
	cmd.Flags().BoolVar(&convertFromClipboard, "from-clipboard", false, "Convert the file currently on the clipboard")
	addDestinationFlags(cmd.Flags())

	return cmd
}

// addDestinationFlags registers the flags controlling where results land.
func addDestinationFlags(fs *pflag.FlagSet) {
	fs.StringVar(&convertDest, "dest", "", "Where results go: save, clipboard or both (default: config)")
	fs.BoolVar(&convertOverwrite, "overwrite", false, "Replace existing output files")
}

// convertPlanEntry tracks one input from argument to outcome. Entries that
// never became runnable jobs carry the reason in Err.
type convertPlanEntry struct {
	Input    string
	Decision convert.Decision
	OutExt   string
	Job      convert.Job
	HasJob   bool
	Err      error
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 0 && !convertFromClipboard {
		return fmt.Errorf("nothing to convert: pass input files or --from-clipboard")
	}

	pp, cfg, err := resolveAppConfig()
	if err != nil {
		return err
	}
	if err := pp.EnsureDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("convert started: %d args", len(args))

	dest, err := resolveDestination(convertDest, cfg)
	if err != nil {
		return err
	}
	outputDir := convertOutput
	if outputDir == "" {
		outputDir = cfg.Convert.OutputDir
	}
	overwrite := convertOverwrite || cfg.Convert.Overwrite

	outWriter := cmd.OutOrStdout()
	mode := tui.DetectMode(outWriter, noProgress, outputJSON)
	if convertPick && mode != tui.ModeTUI {
		return fmt.Errorf("--pick needs an interactive terminal")
	}

	status := tui.NewStatusWriter(cmd.ErrOrStderr())
	defer status.Stop()

	registry := tools.NewRegistry(
		tools.WithLogger(logger),
		tools.WithOverrides(toolOverrides(cfg.Tools)),
	)
	resolver := convert.NewResolver(registry)
	resolver.Preferences = cfg.Rankings()

	inputs := append([]string(nil), args...)
	if convertFromClipboard {
		status.Update("Reading clipboard...")
		resolved, ok, err := clipboard.NewResolver().Resolve(ctx)
		if err != nil {
			return fmt.Errorf("read clipboard: %w", err)
		}
		switch {
		case ok:
			logger.Printf("clipboard input: %s (temp=%v)", resolved.Path, resolved.Temp)
			inputs = append(inputs, resolved.Path)
		case len(inputs) == 0:
			// An empty clipboard is a no-op, not a failure.
			status.Stop()
			fmt.Fprintln(outWriter, "nothing usable on the clipboard; copy a file or an image and try again")
			return nil
		default:
			logger.Printf("clipboard empty, converting %d named inputs", len(inputs))
			fmt.Fprintln(cmd.ErrOrStderr(), "nothing usable on the clipboard; converting the named files only")
		}
	}

	// First probe happens inside Decide; later inputs hit the memoized
	// registry.
	status.Update("Probing tools...")
	entries := make([]convertPlanEntry, len(inputs))
	for i, input := range inputs {
		entries[i] = planEntry(ctx, resolver, input)
	}
	status.Stop()

	jobs := make([]convert.Job, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.Err != nil {
			continue
		}

		ext := strings.TrimSpace(convertTo)
		if convertPick {
			title := fmt.Sprintf("Convert %s to", filepath.Base(e.Input))
			res, err := tui.RunFormatPicker(outWriter, title, pickerOptions(e.Decision), e.Decision.DefaultOutput)
			if err != nil {
				return err
			}
			if res.Cancelled {
				fmt.Fprintln(outWriter, "cancelled")
				return nil
			}
			ext = res.Choice
		}
		if ext == "" {
			ext = e.Decision.DefaultOutput
		}

		outPath, err := convert.BuildOutputPath(e.Input, ext, outputDir, dest)
		if err != nil {
			e.Err = err
			continue
		}

		e.OutExt = formats.Normalize(ext)
		e.Job = convert.NewJob(convert.Request{
			InputPath:  e.Input,
			OutputPath: outPath,
			OutputExt:  ext,
			Overwrite:  overwrite,
			Kind:       e.Decision.Kind,
			Descriptor: e.Decision.Descriptor,
		})
		e.HasJob = true
		jobs = append(jobs, e.Job)
		logger.Printf("planned %s -> %s via %s", e.Input, outPath, e.Decision.Kind)
	}

	invoker := convert.NewInvoker(nil, logger)
	if mode != tui.ModeTUI {
		invoker.LogOutput = cmd.ErrOrStderr()
	}
	svc := &convert.Service{Invoker: invoker}
	opts := convert.Options{Concurrency: convertJobs}

	results := make(map[string]convert.Result, len(jobs))
	if mode == tui.ModeTUI && len(jobs) > 0 {
		model := buildConvertProgressModel(entries)
		var batch []convert.Result
		work := func(send func(tea.Msg)) {
			batchOpts := opts
			batchOpts.Reporter = tui.NewConvertReporter(send, convertStartFields, convertCompleteFields)
			batch = svc.ConvertAll(ctx, jobs, batchOpts)
		}
		if err := tui.RunWithWork(outWriter, model, work); err != nil {
			return err
		}
		for _, res := range batch {
			results[res.Job.ID] = res
		}
	} else {
		for _, res := range svc.ConvertAll(ctx, jobs, opts) {
			results[res.Job.ID] = res
		}
	}

	copied := copyResultsToClipboard(ctx, cmd.ErrOrStderr(), logger, dest, entries, results)

	outcomes, counts := buildConvertOutcomes(entries, results, copied)
	logger.Printf("convert finished: %d converted, %d skipped, %d failed", counts.Converted, counts.Skipped, counts.Failed)

	switch mode {
	case tui.ModeJSON:
		if err := writeConvertJSON(cmd, outcomes, counts); err != nil {
			return err
		}
	case tui.ModeTUI:
		printConvertSummary(outWriter, counts)
		if counts.Failed > 0 {
			writeConvertFailures(cmd, outcomes)
		}
	default:
		writeConvertTable(cmd, outcomes, counts)
		if counts.Failed > 0 {
			writeConvertFailures(cmd, outcomes)
		}
	}

	if counts.Failed > 0 && counts.Converted == 0 && counts.Skipped == 0 {
		return fmt.Errorf("no conversions succeeded")
	}
	return nil
}

// planEntry stats the input and picks its converter.
func planEntry(ctx context.Context, resolver *convert.Resolver, input string) convertPlanEntry {
	entry := convertPlanEntry{Input: input}

	exists, err := paths.FileExists(input)
	if err != nil {
		entry.Err = fmt.Errorf("stat input: %w", err)
		return entry
	}
	if !exists {
		entry.Err = fmt.Errorf("%s: %w", input, os.ErrNotExist)
		return entry
	}

	decision, ok := resolver.Decide(ctx, filepath.Ext(input))
	if !ok {
		entry.Err = &convert.NoConverterError{Ext: formats.Normalize(filepath.Ext(input))}
		return entry
	}
	entry.Decision = decision
	return entry
}

func resolveDestination(flagValue string, cfg config.Config) (convert.Destination, error) {
	name := strings.TrimSpace(flagValue)
	if name == "" {
		name = cfg.Convert.Destination
	}
	dest, ok := convert.ParseDestination(name)
	if !ok {
		return "", fmt.Errorf("unknown destination %q (expected save, clipboard or both)", name)
	}
	// The standing copy_to_clipboard preference upgrades the configured
	// default, never an explicit --dest save.
	if strings.TrimSpace(flagValue) == "" && dest == convert.DestinationSave && cfg.Convert.CopyToClipboard {
		dest = convert.DestinationBoth
	}
	return dest, nil
}

func toolOverrides(tc config.ToolsConfig) map[tools.Kind]string {
	configured := map[tools.Kind]string{
		tools.KindImage:  tc.Image,
		tools.KindMedia:  tc.Media,
		tools.KindMarkup: tc.Markup,
		tools.KindOffice: tc.Office,
	}
	overrides := make(map[tools.Kind]string, len(configured))
	for kind, path := range configured {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			overrides[kind] = trimmed
		}
	}
	return overrides
}

// pickerOptions lists the extensions offered by the interactive picker,
// falling back to the category ranking when the tool never reported its
// writable set.
func pickerOptions(decision convert.Decision) []string {
	options := append([]string(nil), decision.Descriptor.Outputs...)
	if len(options) == 0 {
		options = append(options, formats.Preferences(decision.Category)...)
	}
	sort.Strings(options)
	return options
}

var convertColumns = []tui.Column{
	{Header: "FILE", Width: 28},
	{Header: "TO", Width: 5},
	{Header: "TOOL", Width: 7},
	{Header: "STATUS", Width: 11},
	{Header: "TIME", Width: 8},
}

func buildConvertProgressModel(entries []convertPlanEntry) tui.ProgressModel {
	model := tui.NewProgressModel("convert", convertColumns)
	for i, e := range entries {
		key := fmt.Sprintf("plan:%03d", i)
		status := "pending"
		tool := "-"
		to := "-"
		if e.HasJob {
			key = e.Job.ID
			tool = e.Decision.Kind.String()
			to = e.OutExt
		} else {
			status = planErrorStatus(e.Err)
		}
		model.AddRow(key, []string{filepath.Base(e.Input), to, tool, status, "-"})
	}
	return model
}

func convertStartFields(convert.Job) map[string]string {
	return map[string]string{"STATUS": "converting"}
}

func convertCompleteFields(res convert.Result) map[string]string {
	fields := map[string]string{"STATUS": statusForResult(res.Err)}
	if res.Err == nil {
		fields["TIME"] = res.Duration.Round(10 * time.Millisecond).String()
	}
	return fields
}

// statusForResult maps a conversion error onto a short table status.
func statusForResult(err error) string {
	if err == nil {
		return "converted"
	}
	var exists *convert.DestinationExistsError
	if errors.As(err, &exists) {
		return "exists"
	}
	var unsupported *convert.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return "unsupported"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "cancelled"
	}
	return "failed"
}

// planErrorStatus labels entries that never reached the batch.
func planErrorStatus(err error) string {
	var noConv *convert.NoConverterError
	if errors.As(err, &noConv) {
		return "no tool"
	}
	if errors.Is(err, os.ErrNotExist) {
		return "missing"
	}
	return "failed"
}

func copyResultsToClipboard(ctx context.Context, errOut io.Writer, logger tools.Logger, dest convert.Destination, entries []convertPlanEntry, results map[string]convert.Result) map[string]bool {
	copied := make(map[string]bool)
	if dest != convert.DestinationClipboard && dest != convert.DestinationBoth {
		return copied
	}

	copier := clipboard.NewCopier()
	for _, e := range entries {
		if !e.HasJob {
			continue
		}
		res, ok := results[e.Job.ID]
		if !ok || res.Err != nil {
			continue
		}
		if err := copier.CopyFile(ctx, res.OutputPath); err != nil {
			logger.Printf("clipboard copy failed for %s: %v", res.OutputPath, err)
			fmt.Fprintf(errOut, "clipboard copy failed: %v\n", err)
			break
		}
		copied[e.Job.ID] = true
	}
	return copied
}

type convertOutcome struct {
	Input      string `json:"input"`
	To         string `json:"to,omitempty"`
	Tool       string `json:"tool,omitempty"`
	Status     string `json:"status"`
	Output     string `json:"output,omitempty"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Copied     bool   `json:"copied,omitempty"`
	Error      string `json:"error,omitempty"`
}

type convertCounts struct {
	Converted  int   `json:"converted"`
	Copied     int   `json:"copied"`
	Skipped    int   `json:"skipped"`
	Failed     int   `json:"failed"`
	TotalBytes int64 `json:"total_bytes"`
}

func buildConvertOutcomes(entries []convertPlanEntry, results map[string]convert.Result, copied map[string]bool) ([]convertOutcome, convertCounts) {
	outcomes := make([]convertOutcome, 0, len(entries))
	var counts convertCounts

	for _, e := range entries {
		out := convertOutcome{Input: e.Input}

		if e.Err != nil {
			out.Status = planErrorStatus(e.Err)
			out.Error = e.Err.Error()
			counts.Failed++
			outcomes = append(outcomes, out)
			continue
		}

		res := results[e.Job.ID]
		out.To = e.OutExt
		out.Tool = e.Decision.Kind.String()

		if res.Err != nil {
			out.Status = statusForResult(res.Err)
			out.Error = res.Err.Error()
			if out.Status == "exists" {
				counts.Skipped++
			} else {
				counts.Failed++
			}
			outcomes = append(outcomes, out)
			continue
		}

		out.Status = "converted"
		out.Output = res.OutputPath
		out.DurationMS = res.Duration.Milliseconds()
		if info, err := os.Stat(res.OutputPath); err == nil {
			out.SizeBytes = info.Size()
			counts.TotalBytes += info.Size()
		}
		out.Copied = copied[e.Job.ID]
		if out.Copied {
			counts.Copied++
		}
		counts.Converted++
		outcomes = append(outcomes, out)
	}

	return outcomes, counts
}

func writeConvertJSON(cmd *cobra.Command, outcomes []convertOutcome, counts convertCounts) error {
	payload := struct {
		Results []convertOutcome `json:"results"`
		Summary convertCounts    `json:"summary"`
	}{
		Results: outcomes,
		Summary: counts,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode convert json: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func writeConvertTable(cmd *cobra.Command, outcomes []convertOutcome, counts convertCounts) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tTO\tTOOL\tSTATUS\tSIZE\tOUTPUT\tERROR")
	for _, o := range outcomes {
		status := o.Status
		if o.Copied {
			status = "copied"
		}
		size := "-"
		if o.SizeBytes > 0 {
			size = humanize.Bytes(uint64(o.SizeBytes))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			filepath.Base(o.Input),
			tui.NonEmptyOrDash(o.To),
			tui.NonEmptyOrDash(o.Tool),
			status,
			size,
			tui.NonEmptyOrDash(o.Output),
			o.Error,
		)
	}
	w.Flush()

	printConvertSummary(cmd.OutOrStdout(), counts)
}

func printConvertSummary(w io.Writer, counts convertCounts) {
	line := fmt.Sprintf("Converted: %d, Skipped: %d, Failed: %d", counts.Converted, counts.Skipped, counts.Failed)
	if counts.Copied > 0 {
		line += fmt.Sprintf(", Copied: %d", counts.Copied)
	}
	if counts.TotalBytes > 0 {
		line += ", Output: " + humanize.Bytes(uint64(counts.TotalBytes))
	}
	fmt.Fprintln(w, line)
	if counts.Skipped > 0 {
		fmt.Fprintln(w, "Some outputs already exist; pass --overwrite to replace them.")
	}
}

func writeConvertFailures(cmd *cobra.Command, outcomes []convertOutcome) {
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "Failures:")
	missingTool := false
	for _, o := range outcomes {
		if o.Error == "" || o.Status == "exists" {
			continue
		}
		if o.Status == "no tool" {
			missingTool = true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", o.Input, o.Error)
	}
	if missingTool {
		fmt.Fprintln(cmd.OutOrStdout(), "Run `fileforge tools` for install hints.")
	}
}
