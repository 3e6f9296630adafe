package tools

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// candidate pairs an executable path with the strategy that found it.
type candidate struct {
	path   string
	source Source
}

// candidates returns executable paths to try for a kind, in resolution
// priority order: environment override, config override, PATH lookup, and
// for the image tool a scan of well-known install directories. Every
// candidate is still subject to a version probe before it is accepted.
func (r *Registry) candidates(kind Kind) []candidate {
	def := toolDefinitions[kind]
	var list []candidate
	seen := map[string]bool{}

	add := func(path string, source Source) {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		list = append(list, candidate{path: path, source: source})
	}

	add(r.getenv(def.envVar), SourceOverride)
	add(r.overrides[kind], SourceOverride)

	for _, exe := range def.executables {
		if path, err := r.lookPath(exe); err == nil {
			add(path, SourceSystem)
		}
	}

	if kind == KindImage {
		for _, dir := range wellKnownDirs() {
			for _, exe := range def.executables {
				path := filepath.Join(dir, exe)
				if fileExists(path) {
					add(path, SourceScan)
				}
			}
		}
	}

	return list
}

// wellKnownDirs lists install locations that are often missing from PATH in
// GUI-launched processes.
func wellKnownDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/opt/homebrew/bin", "/usr/local/bin", "/opt/local/bin"}
	case "linux":
		return []string{"/usr/local/bin", "/usr/bin", "/snap/bin"}
	case "windows":
		matches, _ := filepath.Glob(`C:\Program Files\ImageMagick-*`)
		return matches
	default:
		return nil
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
