package tools

import (
	"context"
	"regexp"
	"strings"

	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// loadCapabilities fills the descriptor's input/output listings by running
// the tool's format-listing command. A failed invocation or parse leaves both
// sets empty: the tool stays available with unknown formats and callers treat
// it as a last-resort converter rather than refusing outright.
func (r *Registry) loadCapabilities(ctx context.Context, desc *Descriptor) {
	var err error
	switch desc.Kind {
	case KindImage:
		err = r.listImageFormats(ctx, desc)
	case KindMedia:
		err = r.listMediaFormats(ctx, desc)
	case KindMarkup:
		err = r.listMarkupFormats(ctx, desc)
	case KindOffice:
		// No listing command exists; the capabilities ship as a fixed table.
		desc.Inputs = append([]string(nil), officeInputs...)
		desc.Outputs = append([]string(nil), officeOutputs...)
	}
	if err != nil {
		r.logf("%s: format listing failed: %v", desc.Name, err)
		desc.Inputs = nil
		desc.Outputs = nil
	}
}

func (r *Registry) listImageFormats(ctx context.Context, desc *Descriptor) error {
	res, err := r.runner.Run(ctx, desc.Path, []string{"-list", "format"}, RunOptions{})
	if err != nil {
		return err
	}
	desc.Inputs, desc.Outputs = parseMagickFormats(string(res.Stdout))
	return nil
}

func (r *Registry) listMediaFormats(ctx context.Context, desc *Descriptor) error {
	res, err := r.runner.Run(ctx, desc.Path, []string{"-hide_banner", "-formats"}, RunOptions{})
	if err != nil {
		return err
	}
	desc.Inputs, desc.Outputs = parseMediaFormats(string(res.Stdout))
	return nil
}

func (r *Registry) listMarkupFormats(ctx context.Context, desc *Descriptor) error {
	inRes, err := r.runner.Run(ctx, desc.Path, []string{"--list-input-formats"}, RunOptions{})
	if err != nil {
		return err
	}
	outRes, err := r.runner.Run(ctx, desc.Path, []string{"--list-output-formats"}, RunOptions{})
	if err != nil {
		return err
	}
	desc.Inputs = parsePandocFormats(string(inRes.Stdout))
	desc.Outputs = parsePandocFormats(string(outRes.Stdout))
	return nil
}

var (
	magickModeRegex = regexp.MustCompile(`^[r-][w-][+-]$`)
	mediaFlagsRegex = regexp.MustCompile(`^(DE|D|E)$`)
	extTokenRegex   = regexp.MustCompile(`^[a-z0-9]{1,7}$`)
)

// parseMagickFormats scans `magick -list format` output. Data rows look like
// "PNG* PNG rw- Portable Network Graphics": the first column is the format
// name (a trailing * or + marks blob support) and the mode column encodes
// readability and writability.
func parseMagickFormats(output string) (inputs, outputs []string) {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		mode := ""
		for _, field := range fields[1:] {
			if magickModeRegex.MatchString(field) {
				mode = field
				break
			}
		}
		if mode == "" {
			continue
		}
		name := strings.ToLower(strings.TrimRight(fields[0], "*+"))
		if !extTokenRegex.MatchString(name) {
			continue
		}
		if mode[0] == 'r' {
			inputs = append(inputs, name)
		}
		if mode[1] == 'w' {
			outputs = append(outputs, name)
		}
	}
	return formats.NormalizeSet(inputs), formats.NormalizeSet(outputs)
}

// mediaNameAliases maps ffmpeg container names onto the extension a user
// would actually type.
var mediaNameAliases = map[string]string{
	"matroska": "mkv",
}

// parseMediaFormats scans `ffmpeg -formats` output. Rows after the "--"
// separator carry D/E flags and a name field that may hold several
// comma-separated container names.
func parseMediaFormats(output string) (inputs, outputs []string) {
	inBody := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inBody {
			if strings.HasPrefix(trimmed, "--") {
				inBody = true
			}
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 || !mediaFlagsRegex.MatchString(fields[0]) {
			continue
		}
		flags := fields[0]
		for _, name := range strings.Split(fields[1], ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if alias, ok := mediaNameAliases[name]; ok {
				name = alias
			}
			if !extTokenRegex.MatchString(name) {
				continue
			}
			if strings.Contains(flags, "D") {
				inputs = append(inputs, name)
			}
			if strings.Contains(flags, "E") {
				outputs = append(outputs, name)
			}
		}
	}
	return formats.NormalizeSet(inputs), formats.NormalizeSet(outputs)
}

// pandocExtensions maps pandoc format names onto file extensions. Dialect
// variants without a distinct extension (markdown_strict, gfm+footnotes and
// friends) are deliberately absent and get dropped.
var pandocExtensions = map[string]string{
	"asciidoc":   "adoc",
	"biblatex":   "bib",
	"bibtex":     "bib",
	"commonmark": "md",
	"csv":        "csv",
	"docbook":    "xml",
	"docx":       "docx",
	"epub":       "epub",
	"fb2":        "fb2",
	"gfm":        "md",
	"html":       "html",
	"icml":       "icml",
	"ipynb":      "ipynb",
	"json":       "json",
	"latex":      "tex",
	"man":        "man",
	"markdown":   "md",
	"mediawiki":  "wiki",
	"odt":        "odt",
	"opml":       "opml",
	"org":        "org",
	"pdf":        "pdf",
	"plain":      "txt",
	"pptx":       "pptx",
	"rst":        "rst",
	"rtf":        "rtf",
	"t2t":        "t2t",
	"texinfo":    "texi",
	"textile":    "textile",
	"tsv":        "tsv",
	"typst":      "typ",
}

// parsePandocFormats maps the one-name-per-line output of pandoc's
// --list-input-formats and --list-output-formats onto extensions.
func parsePandocFormats(output string) []string {
	var exts []string
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		if ext, ok := pandocExtensions[name]; ok {
			exts = append(exts, ext)
		}
	}
	return formats.NormalizeSet(exts)
}

// LibreOffice capabilities, fixed table covering the common Writer, Calc and
// Impress formats. Because the sets are static they are never empty, so
// unsupported-output checks remain enforceable for the office tool.
var (
	officeInputs = []string{
		"csv", "doc", "docx", "html", "odp", "ods", "odt",
		"ppt", "pptx", "rtf", "txt", "xls", "xlsx",
	}
	officeOutputs = []string{
		"csv", "docx", "epub", "html", "odp", "ods", "odt",
		"pdf", "pptx", "rtf", "txt", "xlsx",
	}
)
