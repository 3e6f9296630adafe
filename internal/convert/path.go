package convert

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/DevDeepakBhattarai/file-forge/internal/paths"
	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// Destination selects where a conversion lands and how its filename is built.
type Destination string

const (
	// DestinationClipboard writes into the temp area under a collision-free
	// name; the result exists only to be copied out.
	DestinationClipboard Destination = "clipboard"
	// DestinationSave writes under a predictable name so repeat conversions
	// of one source target the same file and the overwrite policy decides.
	DestinationSave Destination = "save"
	// DestinationBoth saves predictably and also copies the result to the
	// clipboard afterwards.
	DestinationBoth Destination = "both"
)

// ParseDestination maps a user-supplied mode name onto a Destination. The
// empty string means save.
func ParseDestination(name string) (Destination, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clipboard":
		return DestinationClipboard, true
	case "save", "":
		return DestinationSave, true
	case "both", "save+clipboard":
		return DestinationBoth, true
	}
	return "", false
}

// BuildOutputPath derives the destination path for a conversion. Clipboard
// conversions are disposable and must never collide, so they get a fresh
// random token; saved conversions go to outputDir, or beside the input when
// no directory was chosen. The function only derives the path, it does not
// create anything.
func BuildOutputPath(inputPath, outputExt, outputDir string, dest Destination) (string, error) {
	ext := formats.Normalize(outputExt)
	if ext == "" {
		return "", fmt.Errorf("output extension is empty")
	}
	base := sanitizeBaseName(inputPath)

	if dest == DestinationClipboard {
		name := fmt.Sprintf("%s-converted-%s.%s", base, uuid.NewString(), ext)
		return filepath.Join(paths.TempRoot(), name), nil
	}

	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	abs, err := filepath.Abs(filepath.Join(dir, base+"."+ext))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	return abs, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// sanitizeBaseName strips the extension from the input's base name and
// replaces characters that are hostile in filenames.
func sanitizeBaseName(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.TrimSpace(base)
	if base == "" || base == "." {
		return "untitled"
	}
	return base
}
