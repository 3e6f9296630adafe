package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DevDeepakBhattarai/file-forge/internal/paths"
	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// Request carries everything the invoker needs for one conversion.
type Request struct {
	InputPath  string
	OutputPath string
	OutputExt  string
	Overwrite  bool
	Kind       tools.Kind
	Descriptor tools.Descriptor
}

// Invoker shells out to a resolved tool and normalizes failures. The zero
// value runs real commands without logging.
type Invoker struct {
	Runner    tools.Runner
	Logger    tools.Logger
	LogOutput io.Writer // optional tee for the tool's output streams
}

func NewInvoker(runner tools.Runner, logger tools.Logger) *Invoker {
	return &Invoker{Runner: runner, Logger: logger}
}

func (v *Invoker) runner() tools.Runner {
	if v.Runner == nil {
		return tools.CmdRunner{}
	}
	return v.Runner
}

func (v *Invoker) logf(format string, args ...any) {
	if v == nil || v.Logger == nil {
		return
	}
	v.Logger.Printf(format, args...)
}

// Convert runs the external tool for the request and returns the produced
// path. Output-format membership and the overwrite policy are checked before
// any process is launched. The office tool names its own output file; when
// that differs from the requested path the result is moved into place, and
// its existence is verified first because soffice can exit zero without
// producing anything.
func (v *Invoker) Convert(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ext := formats.Normalize(req.OutputExt)
	if ext == "" {
		return "", fmt.Errorf("output extension is empty")
	}

	desc := req.Descriptor
	if len(desc.Outputs) > 0 && !desc.SupportsOutput(ext) {
		return "", &UnsupportedFormatError{Tool: desc.Name, Ext: ext, Supported: desc.Outputs}
	}

	if !req.Overwrite {
		exists, err := paths.FileExists(req.OutputPath)
		if err != nil {
			return "", fmt.Errorf("stat destination: %w", err)
		}
		if exists {
			return "", &DestinationExistsError{Path: req.OutputPath}
		}
	}

	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
		return "", fmt.Errorf("ensure output directory: %w", err)
	}

	args, produced := buildArgs(req, ext)
	v.logf("converting %s -> %s via %s", req.InputPath, req.OutputPath, desc.Name)

	opts := tools.RunOptions{}
	if v.LogOutput != nil {
		opts.Stdout = v.LogOutput
		opts.Stderr = v.LogOutput
	}

	res, err := v.runner().Run(ctx, desc.Path, args, opts)
	if err != nil {
		_ = os.Remove(req.OutputPath)
		if produced != req.OutputPath {
			_ = os.Remove(produced)
		}
		return "", &ProcessError{Tool: desc.Name, Err: err, Stdout: string(res.Stdout), Stderr: string(res.Stderr)}
	}

	if req.Kind == tools.KindOffice {
		exists, statErr := paths.FileExists(produced)
		if statErr != nil {
			return "", fmt.Errorf("stat office output: %w", statErr)
		}
		if !exists {
			return "", &ProcessError{
				Tool:   desc.Name,
				Err:    fmt.Errorf("expected output %s was not produced", produced),
				Stdout: string(res.Stdout),
				Stderr: string(res.Stderr),
			}
		}
		if produced != req.OutputPath {
			if err := os.Rename(produced, req.OutputPath); err != nil {
				return "", fmt.Errorf("move office output: %w", err)
			}
		}
	}

	return req.OutputPath, nil
}

// buildArgs assembles the tool-specific argument list. The second return is
// the path the tool itself will write, which differs from the requested path
// only for the office tool: soffice takes an output directory and derives
// the filename from the input's base name.
func buildArgs(req Request, ext string) (args []string, produced string) {
	switch req.Kind {
	case tools.KindMedia:
		overwriteFlag := "-n"
		if req.Overwrite {
			overwriteFlag = "-y"
		}
		args = []string{"-hide_banner", "-loglevel", "error", overwriteFlag, "-i", req.InputPath, req.OutputPath}
		return args, req.OutputPath
	case tools.KindMarkup:
		return []string{req.InputPath, "-o", req.OutputPath}, req.OutputPath
	case tools.KindOffice:
		outDir := filepath.Dir(req.OutputPath)
		base := strings.TrimSuffix(filepath.Base(req.InputPath), filepath.Ext(req.InputPath))
		produced = filepath.Join(outDir, base+"."+ext)
		return []string{"--headless", "--convert-to", ext, "--outdir", outDir, req.InputPath}, produced
	default:
		// The image tool infers both formats from the file extensions.
		return []string{req.InputPath, req.OutputPath}, req.OutputPath
	}
}
