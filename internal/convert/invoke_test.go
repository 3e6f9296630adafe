package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
)

type fakeRunner struct {
	calls   int
	command string
	args    []string
	stdout  []byte
	stderr  []byte
	err     error
	onRun   func(command string, args []string)
}

func (f *fakeRunner) Run(ctx context.Context, command string, args []string, opts tools.RunOptions) (tools.RunResult, error) {
	f.calls++
	f.command = command
	f.args = append([]string(nil), args...)
	if f.onRun != nil {
		f.onRun(command, args)
	}
	return tools.RunResult{Stdout: f.stdout, Stderr: f.stderr}, f.err
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("input"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestConvertImageArgs(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "shot.heic")
	out := filepath.Join(dir, "shot.png")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "png",
		Kind:       tools.KindImage,
		Descriptor: tools.Descriptor{Kind: tools.KindImage, Name: "ImageMagick", Path: "/usr/bin/magick", Outputs: []string{"jpg", "png"}},
	}
	got, err := NewInvoker(fr, nil).Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got != out {
		t.Fatalf("got path %s, want %s", got, out)
	}
	if fr.command != "/usr/bin/magick" {
		t.Fatalf("ran %s, want /usr/bin/magick", fr.command)
	}
	if want := []string{in, out}; !reflect.DeepEqual(fr.args, want) {
		t.Fatalf("args = %v, want %v", fr.args, want)
	}
}

func TestConvertMediaArgs(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "clip.mov")
	out := filepath.Join(dir, "clip.mp4")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "mp4",
		Kind:       tools.KindMedia,
		Descriptor: tools.Descriptor{Kind: tools.KindMedia, Name: "FFmpeg", Path: "/usr/bin/ffmpeg"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []string{"-hide_banner", "-loglevel", "error", "-n", "-i", in, out}
	if !reflect.DeepEqual(fr.args, want) {
		t.Fatalf("args = %v, want %v", fr.args, want)
	}
}

func TestConvertMediaOverwriteFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "clip.mov")
	out := filepath.Join(dir, "clip.mp4")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "mp4",
		Overwrite:  true,
		Kind:       tools.KindMedia,
		Descriptor: tools.Descriptor{Kind: tools.KindMedia, Name: "FFmpeg", Path: "/usr/bin/ffmpeg"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, arg := range fr.args {
		if arg == "-n" {
			t.Fatal("-n passed despite overwrite")
		}
	}
	found := false
	for _, arg := range fr.args {
		if arg == "-y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("args %v missing -y", fr.args)
	}
}

func TestConvertMarkupArgs(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "notes.md")
	out := filepath.Join(dir, "notes.html")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "html",
		Kind:       tools.KindMarkup,
		Descriptor: tools.Descriptor{Kind: tools.KindMarkup, Name: "Pandoc", Path: "/usr/bin/pandoc"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if want := []string{in, "-o", out}; !reflect.DeepEqual(fr.args, want) {
		t.Fatalf("args = %v, want %v", fr.args, want)
	}
}

func TestConvertDestinationExistsNoProcess(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "shot.heic")
	out := writeInput(t, dir, "shot.png")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "png",
		Kind:       tools.KindImage,
		Descriptor: tools.Descriptor{Kind: tools.KindImage, Name: "ImageMagick", Path: "/usr/bin/magick"},
	}
	_, err := NewInvoker(fr, nil).Convert(context.Background(), req)
	var destErr *DestinationExistsError
	if !errors.As(err, &destErr) {
		t.Fatalf("got %v, want DestinationExistsError", err)
	}
	if destErr.Path != out {
		t.Fatalf("error names %s, want %s", destErr.Path, out)
	}
	if fr.calls != 0 {
		t.Fatalf("tool ran %d times, want 0", fr.calls)
	}
}

func TestConvertOverwriteReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "shot.heic")
	out := writeInput(t, dir, "shot.png")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "png",
		Overwrite:  true,
		Kind:       tools.KindImage,
		Descriptor: tools.Descriptor{Kind: tools.KindImage, Name: "ImageMagick", Path: "/usr/bin/magick"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if fr.calls != 1 {
		t.Fatalf("tool ran %d times, want 1", fr.calls)
	}
}

func TestConvertUnsupportedOutputNoProcess(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "shot.heic")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: filepath.Join(dir, "shot.xyz"),
		OutputExt:  "xyz",
		Kind:       tools.KindImage,
		Descriptor: tools.Descriptor{Kind: tools.KindImage, Name: "ImageMagick", Path: "/usr/bin/magick", Outputs: []string{"jpg", "png"}},
	}
	_, err := NewInvoker(fr, nil).Convert(context.Background(), req)
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v, want UnsupportedFormatError", err)
	}
	if !strings.Contains(err.Error(), "jpg, png") {
		t.Fatalf("error %q does not list the supported formats", err)
	}
	if fr.calls != 0 {
		t.Fatalf("tool ran %d times, want 0", fr.calls)
	}
}

func TestConvertUnknownOutputsPermissive(t *testing.T) {
	// An empty output listing means the listing failed, not that the tool
	// writes nothing; the attempt must go ahead.
	dir := t.TempDir()
	in := writeInput(t, dir, "shot.heic")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: filepath.Join(dir, "shot.xyz"),
		OutputExt:  "xyz",
		Kind:       tools.KindImage,
		Descriptor: tools.Descriptor{Kind: tools.KindImage, Name: "ImageMagick", Path: "/usr/bin/magick"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if fr.calls != 1 {
		t.Fatalf("tool ran %d times, want 1", fr.calls)
	}
}

func TestConvertProcessFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "clip.mov")
	out := filepath.Join(dir, "clip.mp4")
	fr := &fakeRunner{
		err:    errors.New("exit status 1"),
		stderr: []byte("Unknown encoder 'h265'"),
	}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "mp4",
		Kind:       tools.KindMedia,
		Descriptor: tools.Descriptor{Kind: tools.KindMedia, Name: "FFmpeg", Path: "/usr/bin/ffmpeg"},
	}
	_, err := NewInvoker(fr, nil).Convert(context.Background(), req)
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("got %v, want ProcessError", err)
	}
	msg := err.Error()
	for _, want := range []string{"FFmpeg", "exit status 1", "Unknown encoder"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestConvertProcessFailureRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "clip.mov")
	out := filepath.Join(dir, "clip.mp4")
	fr := &fakeRunner{err: errors.New("exit status 1")}
	fr.onRun = func(string, []string) {
		if err := os.WriteFile(out, []byte("partial"), 0o644); err != nil {
			t.Fatalf("write partial: %v", err)
		}
	}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "mp4",
		Kind:       tools.KindMedia,
		Descriptor: tools.Descriptor{Kind: tools.KindMedia, Name: "FFmpeg", Path: "/usr/bin/ffmpeg"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err == nil {
		t.Fatal("expected an error")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("partial output left behind at %s", out)
	}
}

func TestConvertOfficeArgsAndRename(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "report.docx")
	out := filepath.Join(dir, "report-converted-abc123.pdf")
	produced := filepath.Join(dir, "report.pdf")
	fr := &fakeRunner{}
	fr.onRun = func(string, []string) {
		if err := os.WriteFile(produced, []byte("pdf"), 0o644); err != nil {
			t.Fatalf("write produced: %v", err)
		}
	}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "pdf",
		Kind:       tools.KindOffice,
		Descriptor: tools.Descriptor{Kind: tools.KindOffice, Name: "LibreOffice", Path: "/usr/bin/soffice", Outputs: []string{"docx", "pdf"}},
	}
	got, err := NewInvoker(fr, nil).Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []string{"--headless", "--convert-to", "pdf", "--outdir", dir, in}
	if !reflect.DeepEqual(fr.args, want) {
		t.Fatalf("args = %v, want %v", fr.args, want)
	}
	if got != out {
		t.Fatalf("got path %s, want %s", got, out)
	}
	if _, statErr := os.Stat(out); statErr != nil {
		t.Fatalf("renamed output missing: %v", statErr)
	}
	if _, statErr := os.Stat(produced); !os.IsNotExist(statErr) {
		t.Fatal("tool-named output left behind after rename")
	}
}

func TestConvertOfficeSameNameNoRename(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "report.docx")
	out := filepath.Join(dir, "report.pdf")
	fr := &fakeRunner{}
	fr.onRun = func(string, []string) {
		if err := os.WriteFile(out, []byte("pdf"), 0o644); err != nil {
			t.Fatalf("write produced: %v", err)
		}
	}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "pdf",
		Kind:       tools.KindOffice,
		Descriptor: tools.Descriptor{Kind: tools.KindOffice, Name: "LibreOffice", Path: "/usr/bin/soffice"},
	}
	got, err := NewInvoker(fr, nil).Convert(context.Background(), req)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got != out {
		t.Fatalf("got path %s, want %s", got, out)
	}
	if _, statErr := os.Stat(out); statErr != nil {
		t.Fatalf("output missing: %v", statErr)
	}
}

func TestConvertOfficeMissingOutput(t *testing.T) {
	// soffice can exit zero without writing anything; that has to surface
	// as a failure, not a phantom success.
	dir := t.TempDir()
	in := writeInput(t, dir, "report.docx")
	fr := &fakeRunner{stderr: []byte("Error: no export filter")}

	req := Request{
		InputPath:  in,
		OutputPath: filepath.Join(dir, "report.pdf"),
		OutputExt:  "pdf",
		Kind:       tools.KindOffice,
		Descriptor: tools.Descriptor{Kind: tools.KindOffice, Name: "LibreOffice", Path: "/usr/bin/soffice"},
	}
	_, err := NewInvoker(fr, nil).Convert(context.Background(), req)
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("got %v, want ProcessError", err)
	}
	if !strings.Contains(err.Error(), "was not produced") {
		t.Fatalf("error %q does not mention the missing output", err)
	}
	if !strings.Contains(err.Error(), "no export filter") {
		t.Fatalf("error %q does not carry stderr", err)
	}
}

func TestConvertCreatesOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "shot.heic")
	out := filepath.Join(dir, "nested", "deeper", "shot.png")
	fr := &fakeRunner{}

	req := Request{
		InputPath:  in,
		OutputPath: out,
		OutputExt:  "png",
		Kind:       tools.KindImage,
		Descriptor: tools.Descriptor{Kind: tools.KindImage, Name: "ImageMagick", Path: "/usr/bin/magick"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err != nil {
		t.Fatalf("convert: %v", err)
	}
	info, statErr := os.Stat(filepath.Dir(out))
	if statErr != nil || !info.IsDir() {
		t.Fatalf("output directory not created: %v", statErr)
	}
}

func TestConvertEmptyExtension(t *testing.T) {
	fr := &fakeRunner{}
	req := Request{
		InputPath:  "/tmp/whatever.png",
		OutputPath: "/tmp/whatever.",
		OutputExt:  " . ",
		Kind:       tools.KindImage,
		Descriptor: tools.Descriptor{Kind: tools.KindImage, Name: "ImageMagick", Path: "/usr/bin/magick"},
	}
	if _, err := NewInvoker(fr, nil).Convert(context.Background(), req); err == nil {
		t.Fatal("expected an error for an empty output extension")
	}
	if fr.calls != 0 {
		t.Fatalf("tool ran %d times, want 0", fr.calls)
	}
}
