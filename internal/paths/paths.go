package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppPaths captures canonical locations for fileforge's user-level state.
type AppPaths struct {
	Root       string // ~/.fileforge
	ConfigFile string // ~/.fileforge/config.yaml
	EnvFile    string // ~/.fileforge/.env
	LogsDir    string // ~/.fileforge/logs
}

// Resolve determines the application root using the optional --home flag or
// the conventional directory under the user's home when the flag is empty.
func Resolve(homeFlag string) (AppPaths, error) {
	var (
		root string
		err  error
	)

	if homeFlag != "" {
		root, err = filepath.Abs(homeFlag)
		if err != nil {
			return AppPaths{}, fmt.Errorf("resolve app root: %w", err)
		}
	} else {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return AppPaths{}, fmt.Errorf("detect user home: %w", herr)
		}
		root = filepath.Join(home, ".fileforge")
	}

	return newAppPaths(root), nil
}

func newAppPaths(root string) AppPaths {
	return AppPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, "config.yaml"),
		EnvFile:    filepath.Join(root, ".env"),
		LogsDir:    filepath.Join(root, "logs"),
	}
}

// EnsureDirs creates the application root and logs directory.
func (p AppPaths) EnsureDirs() error {
	for _, dir := range []string{p.Root, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// TempRoot returns the directory for clipboard-mode conversion outputs. The
// directory is shared across runs so stale results can be swept later.
func TempRoot() string {
	return filepath.Join(os.TempDir(), "fileforge")
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
