package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// Copier places a converted file on the system clipboard. On darwin and
// windows the file itself is copied as a file reference; on linux images go
// up as typed image data and everything else as the path in text form,
// which is what the common helpers support.
type Copier struct {
	runner   tools.Runner
	lookPath func(string) (string, error)
	goos     string
}

// NewCopier builds a Copier; the Resolver options it shares are applied via
// the same names.
func NewCopier(opts ...Option) *Copier {
	r := &Resolver{
		runner:   tools.CmdRunner{},
		lookPath: exec.LookPath,
		goos:     runtime.GOOS,
	}
	for _, opt := range opts {
		opt(r)
	}
	return &Copier{runner: r.runner, lookPath: r.lookPath, goos: r.goos}
}

// CopyFile puts the file at path on the clipboard.
func (c *Copier) CopyFile(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch c.goos {
	case "darwin":
		script := fmt.Sprintf("set the clipboard to POSIX file %q", path)
		return c.run(ctx, "osascript", "-e", script)
	case "windows":
		cmd := fmt.Sprintf("Set-Clipboard -Path %q", path)
		return c.run(ctx, "powershell", "-NoProfile", "-Command", cmd)
	default:
		return c.copyLinux(ctx, path)
	}
}

func (c *Copier) copyLinux(ctx context.Context, path string) error {
	if mime := imageMIME(filepath.Ext(path)); mime != "" {
		if helper, err := c.lookPath("xclip"); err == nil {
			_, runErr := c.runner.Run(ctx, helper, []string{"-selection", "clipboard", "-t", mime, "-i", path}, tools.RunOptions{})
			return runErr
		}
		if helper, err := c.lookPath("wl-copy"); err == nil {
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open for clipboard: %w", err)
			}
			defer file.Close()
			_, runErr := c.runner.Run(ctx, helper, []string{"--type", mime}, tools.RunOptions{Stdin: file})
			return runErr
		}
	}

	// Fall back to the path as text.
	if helper, err := c.lookPath("xclip"); err == nil {
		_, runErr := c.runner.Run(ctx, helper, []string{"-selection", "clipboard"}, tools.RunOptions{Stdin: strings.NewReader(path)})
		return runErr
	}
	if helper, err := c.lookPath("wl-copy"); err == nil {
		_, runErr := c.runner.Run(ctx, helper, []string{path}, tools.RunOptions{})
		return runErr
	}
	return fmt.Errorf("no clipboard helper found (install xclip or wl-clipboard)")
}

// imageMIME maps raster output extensions onto the clipboard target type.
// Extensions without a well-supported type return empty and get copied as a
// path instead.
func imageMIME(ext string) string {
	switch formats.Normalize(ext) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return ""
	}
}

func (c *Copier) run(ctx context.Context, helper string, args ...string) error {
	path, err := c.lookPath(helper)
	if err != nil {
		return fmt.Errorf("clipboard helper %s not found", helper)
	}
	if _, err := c.runner.Run(ctx, path, args, tools.RunOptions{}); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
