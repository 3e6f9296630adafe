package clipboard

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
)

type fakeCall struct {
	command string
	args    []string
	stdin   string
}

type fakeResponse struct {
	stdout  []byte
	err     error
	respond func(args []string) ([]byte, error)
	onRun   func(args []string)
}

type fakeRunner struct {
	responses map[string]fakeResponse // keyed by helper base name
	calls     []fakeCall
}

func (f *fakeRunner) Run(ctx context.Context, command string, args []string, opts tools.RunOptions) (tools.RunResult, error) {
	call := fakeCall{command: command, args: append([]string(nil), args...)}
	if opts.Stdin != nil {
		data, _ := io.ReadAll(opts.Stdin)
		call.stdin = string(data)
	}
	f.calls = append(f.calls, call)

	resp, ok := f.responses[filepath.Base(command)]
	if !ok {
		return tools.RunResult{}, errors.New("unexpected helper " + command)
	}
	if resp.onRun != nil {
		resp.onRun(args)
	}
	if resp.respond != nil {
		out, err := resp.respond(args)
		return tools.RunResult{Stdout: out}, err
	}
	return tools.RunResult{Stdout: resp.stdout}, resp.err
}

func lookPathFor(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestResolveDarwinFileReference(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "shot.heic")
	if err := os.WriteFile(file, []byte("img"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"osascript": {stdout: []byte(file + "\n")},
	}}
	resolver := NewResolver(
		WithRunner(fr),
		WithLookPath(lookPathFor("osascript", "pbpaste", "pngpaste")),
		WithGOOS("darwin"),
		WithTempDir(t.TempDir()),
	)

	got, ok, err := resolver.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if got.Path != file || got.Temp {
		t.Fatalf("got %+v, want path %s without temp", got, file)
	}
}

func TestResolveDarwinPathTextWithTilde(t *testing.T) {
	home := t.TempDir()
	file := filepath.Join(home, "doc.md")
	if err := os.WriteFile(file, []byte("text"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"osascript": {err: errors.New("exit status 1")},
		"pbpaste":   {stdout: []byte("~/doc.md\n")},
	}}
	resolver := NewResolver(
		WithRunner(fr),
		WithLookPath(lookPathFor("osascript", "pbpaste")),
		WithGOOS("darwin"),
		WithHomeDir(func() (string, error) { return home, nil }),
	)

	got, ok, err := resolver.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if got.Path != file {
		t.Fatalf("got %s, want %s", got.Path, file)
	}
}

func TestResolveDarwinPastedImage(t *testing.T) {
	tmp := t.TempDir()
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"osascript": {err: errors.New("exit status 1")},
		"pbpaste":   {stdout: []byte("not a path")},
		"pngpaste": {onRun: func(args []string) {
			if len(args) == 1 {
				_ = os.WriteFile(args[0], []byte("png-bytes"), 0o644)
			}
		}},
	}}
	resolver := NewResolver(
		WithRunner(fr),
		WithLookPath(lookPathFor("osascript", "pbpaste", "pngpaste")),
		WithGOOS("darwin"),
		WithTempDir(tmp),
	)

	got, ok, err := resolver.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if !got.Temp {
		t.Fatal("pasted image should be marked temp")
	}
	if filepath.Dir(got.Path) != tmp || !strings.HasSuffix(got.Path, ".png") {
		t.Fatalf("unexpected temp path %s", got.Path)
	}
}

func TestResolveNothingUsable(t *testing.T) {
	resolver := NewResolver(
		WithRunner(&fakeRunner{responses: map[string]fakeResponse{}}),
		WithLookPath(lookPathFor()),
		WithGOOS("darwin"),
		WithTempDir(t.TempDir()),
	)

	_, ok, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if ok {
		t.Fatal("expected absent")
	}
}

func TestResolveLinuxFileURI(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "my doc.pdf")
	if err := os.WriteFile(file, []byte("pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	uri := "file://" + strings.ReplaceAll(file, " ", "%20")
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"xclip": {stdout: []byte(uri + "\n")},
	}}
	resolver := NewResolver(
		WithRunner(fr),
		WithLookPath(lookPathFor("xclip")),
		WithGOOS("linux"),
		WithTempDir(t.TempDir()),
	)

	got, ok, err := resolver.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if got.Path != file {
		t.Fatalf("got %s, want %s", got.Path, file)
	}
}

func TestResolveLinuxPastedImage(t *testing.T) {
	tmp := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G'}
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"xclip": {respond: func(args []string) ([]byte, error) {
			for _, arg := range args {
				if arg == "image/png" {
					return png, nil
				}
			}
			return nil, nil
		}},
	}}
	resolver := NewResolver(
		WithRunner(fr),
		WithLookPath(lookPathFor("xclip")),
		WithGOOS("linux"),
		WithTempDir(tmp),
	)

	got, ok, err := resolver.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	data, readErr := os.ReadFile(got.Path)
	if readErr != nil {
		t.Fatalf("read temp image: %v", readErr)
	}
	if string(data) != string(png) {
		t.Fatalf("temp image holds %q, want the clipboard bytes", data)
	}
	if !got.Temp {
		t.Fatal("pasted image should be marked temp")
	}
}

func TestResolveWindowsFileDropList(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "report.docx")
	if err := os.WriteFile(file, []byte("doc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"powershell": {stdout: []byte(file + "\r\n")},
	}}
	resolver := NewResolver(
		WithRunner(fr),
		WithLookPath(lookPathFor("powershell")),
		WithGOOS("windows"),
	)

	got, ok, err := resolver.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if got.Path != file {
		t.Fatalf("got %s, want %s", got.Path, file)
	}
}

func TestResolveQuotedPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mov")
	if err := os.WriteFile(file, []byte("mov"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"xclip": {stdout: []byte(`"` + file + `"`)},
	}}
	resolver := NewResolver(
		WithRunner(fr),
		WithLookPath(lookPathFor("xclip")),
		WithGOOS("linux"),
	)

	got, ok, err := resolver.Resolve(context.Background())
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if got.Path != file {
		t.Fatalf("got %s, want %s", got.Path, file)
	}
}

func TestCopyFileDarwin(t *testing.T) {
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"osascript": {},
	}}
	copier := NewCopier(
		WithRunner(fr),
		WithLookPath(lookPathFor("osascript")),
		WithGOOS("darwin"),
	)

	if err := copier.CopyFile(context.Background(), "/tmp/out.png"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if len(fr.calls) != 1 {
		t.Fatalf("helper ran %d times, want 1", len(fr.calls))
	}
	joined := strings.Join(fr.calls[0].args, " ")
	if !strings.Contains(joined, "POSIX file") || !strings.Contains(joined, "/tmp/out.png") {
		t.Fatalf("unexpected osascript args %v", fr.calls[0].args)
	}
}

func TestCopyFileLinuxImageUsesPngTarget(t *testing.T) {
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"xclip": {},
	}}
	copier := NewCopier(
		WithRunner(fr),
		WithLookPath(lookPathFor("xclip")),
		WithGOOS("linux"),
	)

	if err := copier.CopyFile(context.Background(), "/tmp/out.png"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	joined := strings.Join(fr.calls[0].args, " ")
	if !strings.Contains(joined, "image/png") || !strings.Contains(joined, "/tmp/out.png") {
		t.Fatalf("unexpected xclip args %v", fr.calls[0].args)
	}
}

func TestCopyFileLinuxPathTextFallback(t *testing.T) {
	fr := &fakeRunner{responses: map[string]fakeResponse{
		"xclip": {},
	}}
	copier := NewCopier(
		WithRunner(fr),
		WithLookPath(lookPathFor("xclip")),
		WithGOOS("linux"),
	)

	if err := copier.CopyFile(context.Background(), "/tmp/report.pdf"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got := fr.calls[0].stdin; got != "/tmp/report.pdf" {
		t.Fatalf("stdin = %q, want the path text", got)
	}
}

func TestImageMIME(t *testing.T) {
	cases := map[string]string{
		".png":  "image/png",
		".JPG":  "image/jpeg",
		".jpeg": "image/jpeg",
		".webp": "image/webp",
		".tiff": "image/tiff",
		".svg":  "",
		".pdf":  "",
	}
	for ext, want := range cases {
		if got := imageMIME(ext); got != want {
			t.Errorf("imageMIME(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestCopyFileNoHelper(t *testing.T) {
	copier := NewCopier(
		WithRunner(&fakeRunner{responses: map[string]fakeResponse{}}),
		WithLookPath(lookPathFor()),
		WithGOOS("linux"),
	)

	if err := copier.CopyFile(context.Background(), "/tmp/report.pdf"); err == nil {
		t.Fatal("expected an error with no clipboard helper installed")
	}
}
