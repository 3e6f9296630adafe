package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveWithHomeFlag(t *testing.T) {
	root := t.TempDir()

	pp, err := Resolve(root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pp.Root != root {
		t.Fatalf("root = %s, want %s", pp.Root, root)
	}
	if pp.ConfigFile != filepath.Join(root, "config.yaml") {
		t.Fatalf("config file = %s", pp.ConfigFile)
	}
	if pp.EnvFile != filepath.Join(root, ".env") {
		t.Fatalf("env file = %s", pp.EnvFile)
	}
	if pp.LogsDir != filepath.Join(root, "logs") {
		t.Fatalf("logs dir = %s", pp.LogsDir)
	}
}

func TestResolveRelativeFlagBecomesAbsolute(t *testing.T) {
	pp, err := Resolve("some-dir")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !filepath.IsAbs(pp.Root) {
		t.Fatalf("root %s is not absolute", pp.Root)
	}
	if filepath.Base(pp.Root) != "some-dir" {
		t.Fatalf("root = %s, want a some-dir leaf", pp.Root)
	}
}

func TestResolveDefaultsUnderHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no user home available: %v", err)
	}

	pp, err := Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pp.Root != filepath.Join(home, ".fileforge") {
		t.Fatalf("root = %s, want ~/.fileforge", pp.Root)
	}
}

func TestEnsureDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "app")
	pp, err := Resolve(root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if err := pp.EnsureDirs(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	for _, dir := range []string{pp.Root, pp.LogsDir} {
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			t.Fatalf("%s not created: %v", dir, statErr)
		}
	}

	// A second call over existing directories is a no-op.
	if err := pp.EnsureDirs(); err != nil {
		t.Fatalf("ensure dirs twice: %v", err)
	}
}

func TestTempRoot(t *testing.T) {
	root := TempRoot()
	if !strings.HasPrefix(root, os.TempDir()) {
		t.Fatalf("temp root %s is outside the system temp dir", root)
	}
	if filepath.Base(root) != "fileforge" {
		t.Fatalf("temp root leaf = %s, want fileforge", filepath.Base(root))
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("FileExists(%s) = %v/%v, want true", file, ok, err)
	}
	if ok, err := FileExists(filepath.Join(dir, "absent.txt")); err != nil || ok {
		t.Fatalf("FileExists(absent) = %v/%v, want false without error", ok, err)
	}
	if ok, err := FileExists(dir); err != nil || ok {
		t.Fatalf("FileExists(directory) = %v/%v, want false", ok, err)
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if ok, err := DirExists(dir); err != nil || !ok {
		t.Fatalf("DirExists(%s) = %v/%v, want true", dir, ok, err)
	}
	if ok, err := DirExists(file); err != nil || ok {
		t.Fatalf("DirExists(file) = %v/%v, want false", ok, err)
	}
	if ok, err := DirExists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Fatalf("DirExists(missing) = %v/%v, want false without error", ok, err)
	}
}
