package clipboard

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/DevDeepakBhattarai/file-forge/internal/paths"
	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
)

// Resolved describes a file recovered from the system clipboard.
type Resolved struct {
	Path string
	// Temp marks a pasted image that was written to a scratch file; the
	// caller may delete it after the conversion.
	Temp bool
}

// Resolver pulls a usable input file off the system clipboard by shelling
// out to per-platform helpers. Every avenue is optional: a missing helper or
// unusable clipboard content yields absent, never an error.
type Resolver struct {
	runner   tools.Runner
	lookPath func(string) (string, error)
	goos     string
	tempDir  string
	homeDir  func() (string, error)
}

// Option adjusts a Resolver.
type Option func(*Resolver)

// WithRunner substitutes the subprocess runner.
func WithRunner(r tools.Runner) Option {
	return func(res *Resolver) { res.runner = r }
}

// WithLookPath substitutes helper discovery.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(res *Resolver) { res.lookPath = fn }
}

// WithGOOS substitutes the platform switch.
func WithGOOS(goos string) Option {
	return func(res *Resolver) { res.goos = goos }
}

// WithTempDir substitutes where pasted images are written.
func WithTempDir(dir string) Option {
	return func(res *Resolver) { res.tempDir = dir }
}

// WithHomeDir substitutes home-directory lookup for tilde expansion.
func WithHomeDir(fn func() (string, error)) Option {
	return func(res *Resolver) { res.homeDir = fn }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		runner:   tools.CmdRunner{},
		lookPath: exec.LookPath,
		goos:     runtime.GOOS,
		tempDir:  paths.TempRoot(),
		homeDir:  os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve walks the cascade: an explicit file reference on the clipboard,
// then path-like text, then a pasted raster image saved to a temp file. The
// second return is false when nothing usable was found.
func (r *Resolver) Resolve(ctx context.Context) (Resolved, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch r.goos {
	case "darwin":
		return r.resolveDarwin(ctx)
	case "windows":
		return r.resolveWindows(ctx)
	default:
		return r.resolveLinux(ctx)
	}
}

func (r *Resolver) resolveDarwin(ctx context.Context) (Resolved, bool, error) {
	if path, ok := r.run(ctx, "osascript", "-e", "POSIX path of (the clipboard as «class furl»)"); ok {
		if file := r.usableFile(path); file != "" {
			return Resolved{Path: file}, true, nil
		}
	}
	if text, ok := r.run(ctx, "pbpaste"); ok {
		if file := r.usableFile(text); file != "" {
			return Resolved{Path: file}, true, nil
		}
	}
	return r.pastedImage(ctx)
}

func (r *Resolver) resolveLinux(ctx context.Context) (Resolved, bool, error) {
	text, ok := r.run(ctx, "xclip", "-selection", "clipboard", "-o")
	if !ok {
		text, ok = r.run(ctx, "wl-paste", "--no-newline")
	}
	if ok {
		if file := r.usableFile(text); file != "" {
			return Resolved{Path: file}, true, nil
		}
	}
	return r.pastedImage(ctx)
}

func (r *Resolver) resolveWindows(ctx context.Context) (Resolved, bool, error) {
	if text, ok := r.run(ctx, "powershell", "-NoProfile", "-Command", "Get-Clipboard -Format FileDropList | ForEach-Object { $_.FullName }"); ok {
		if file := r.usableFile(text); file != "" {
			return Resolved{Path: file}, true, nil
		}
	}
	if text, ok := r.run(ctx, "powershell", "-NoProfile", "-Command", "Get-Clipboard"); ok {
		if file := r.usableFile(text); file != "" {
			return Resolved{Path: file}, true, nil
		}
	}
	return Resolved{}, false, nil
}

// pastedImage saves raster clipboard content to a scratch png. On darwin the
// helper writes the file itself; elsewhere the image bytes arrive on stdout.
func (r *Resolver) pastedImage(ctx context.Context) (Resolved, bool, error) {
	if err := os.MkdirAll(r.tempDir, 0o755); err != nil {
		return Resolved{}, false, fmt.Errorf("ensure temp directory: %w", err)
	}
	dst := filepath.Join(r.tempDir, "clipboard-"+uuid.NewString()+".png")

	if r.goos == "darwin" {
		helper, err := r.lookPath("pngpaste")
		if err != nil {
			return Resolved{}, false, nil
		}
		if _, err := r.runner.Run(ctx, helper, []string{dst}, tools.RunOptions{}); err != nil {
			_ = os.Remove(dst)
			return Resolved{}, false, nil
		}
		if exists, _ := paths.FileExists(dst); !exists {
			return Resolved{}, false, nil
		}
		return Resolved{Path: dst, Temp: true}, true, nil
	}

	data, ok := r.runBytes(ctx, "xclip", "-selection", "clipboard", "-t", "image/png", "-o")
	if !ok {
		data, ok = r.runBytes(ctx, "wl-paste", "-t", "image/png")
	}
	if !ok || len(data) == 0 {
		return Resolved{}, false, nil
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return Resolved{}, false, fmt.Errorf("write pasted image: %w", err)
	}
	return Resolved{Path: dst, Temp: true}, true, nil
}

// run executes an optional helper and returns its trimmed stdout.
func (r *Resolver) run(ctx context.Context, helper string, args ...string) (string, bool) {
	data, ok := r.runBytes(ctx, helper, args...)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

func (r *Resolver) runBytes(ctx context.Context, helper string, args ...string) ([]byte, bool) {
	path, err := r.lookPath(helper)
	if err != nil {
		return nil, false
	}
	res, err := r.runner.Run(ctx, path, args, tools.RunOptions{})
	if err != nil {
		return nil, false
	}
	return res.Stdout, true
}

// usableFile interprets clipboard text as a file path: first non-empty line,
// quotes stripped, file URIs decoded, tilde expanded. Returns empty unless
// the result names an existing regular file.
func (r *Resolver) usableFile(text string) string {
	line := firstLine(text)
	line = strings.Trim(line, `"'`)
	if line == "" {
		return ""
	}

	if strings.HasPrefix(line, "file://") {
		decoded, err := url.PathUnescape(strings.TrimPrefix(line, "file://"))
		if err != nil {
			return ""
		}
		line = decoded
	}

	if line == "~" || strings.HasPrefix(line, "~/") {
		home, err := r.homeDir()
		if err != nil {
			return ""
		}
		line = filepath.Join(home, strings.TrimPrefix(line, "~"))
	}

	if exists, err := paths.FileExists(line); err != nil || !exists {
		return ""
	}
	return line
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
