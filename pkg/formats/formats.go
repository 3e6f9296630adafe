package formats

import (
	"sort"
	"strings"
)

// Category groups file extensions by the kind of content they usually hold.
// It is used to pick sensible default output formats, nothing else.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryAudio    Category = "audio"
	CategoryVideo    Category = "video"
	CategoryDocument Category = "document"
	CategoryUnknown  Category = "unknown"
)

// DefaultOutput is the last-resort suggestion when neither a tool's output
// listing nor a category preference list produces a candidate.
const DefaultOutput = "png"

// ParseCategory maps a user-supplied name onto a Category.
func ParseCategory(name string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(name))); c {
	case CategoryImage, CategoryAudio, CategoryVideo, CategoryDocument, CategoryUnknown:
		return c, true
	}
	return CategoryUnknown, false
}

// Normalize returns the canonical form of a file extension: trimmed,
// lower-cased, with any leading dot removed. Normalizing an already
// normalized extension is a no-op.
func Normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// NormalizeSet normalizes every extension, drops empties and duplicates, and
// returns the remainder sorted alphabetically.
func NormalizeSet(exts []string) []string {
	out := NormalizeRanking(exts)
	sort.Strings(out)
	return out
}

// NormalizeRanking is NormalizeSet without the sort: ranked preference lists
// must keep their order, so duplicates are dropped in favor of the first
// occurrence.
func NormalizeRanking(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		norm := Normalize(ext)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}

var imageExtensions = map[string]bool{
	"avif": true,
	"bmp":  true,
	"gif":  true,
	"heic": true,
	"heif": true,
	"ico":  true,
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"svg":  true,
	"tif":  true,
	"tiff": true,
	"webp": true,
}

var audioExtensions = map[string]bool{
	"aac":  true,
	"aiff": true,
	"flac": true,
	"m4a":  true,
	"mp3":  true,
	"ogg":  true,
	"opus": true,
	"wav":  true,
	"wma":  true,
}

var videoExtensions = map[string]bool{
	"3gp":  true,
	"avi":  true,
	"flv":  true,
	"m4v":  true,
	"mkv":  true,
	"mov":  true,
	"mp4":  true,
	"mpeg": true,
	"mpg":  true,
	"ts":   true,
	"webm": true,
	"wmv":  true,
}

// IsImage reports whether the extension is a recognized raster or vector
// image format.
func IsImage(ext string) bool {
	return imageExtensions[Normalize(ext)]
}

// IsAudio reports whether the extension is a recognized audio container.
func IsAudio(ext string) bool {
	return audioExtensions[Normalize(ext)]
}

// IsVideo reports whether the extension is a recognized video container.
func IsVideo(ext string) bool {
	return videoExtensions[Normalize(ext)]
}

// MediaCategory classifies an extension handled by the media transcoder as
// audio or video, or unknown when it belongs to neither table.
func MediaCategory(ext string) Category {
	norm := Normalize(ext)
	switch {
	case audioExtensions[norm]:
		return CategoryAudio
	case videoExtensions[norm]:
		return CategoryVideo
	default:
		return CategoryUnknown
	}
}

// preferences ranks default output candidates per category, most desirable
// first.
var preferences = map[Category][]string{
	CategoryImage:    {"png", "jpg", "jpeg", "webp"},
	CategoryAudio:    {"mp3", "wav", "aac", "flac"},
	CategoryVideo:    {"mp4", "mov", "webm", "mkv"},
	CategoryDocument: {"pdf", "docx", "md", "html"},
	CategoryUnknown:  {"mp4", "mp3", "png", "pdf"},
}

// PreferredOutput suggests a default output extension for the category. The
// first preference present in available wins; otherwise the first available
// entry; otherwise the category's top preference; otherwise DefaultOutput.
// The result is never empty. available is expected to be normalized.
func PreferredOutput(category Category, available []string) string {
	return PreferredOutputRanked(category, nil, available)
}

// PreferredOutputRanked is PreferredOutput with a caller-supplied ranking
// replacing the built-in one for the category. An empty ranking falls back
// to the built-in preferences.
func PreferredOutputRanked(category Category, ranking, available []string) string {
	prefs := ranking
	if len(prefs) == 0 {
		prefs = preferences[category]
	}
	for _, pref := range prefs {
		for _, ext := range available {
			if ext == pref {
				return pref
			}
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	if len(prefs) > 0 {
		return prefs[0]
	}
	return DefaultOutput
}

// Preferences returns a copy of the ranked preference list for a category.
func Preferences(category Category) []string {
	return append([]string(nil), preferences[category]...)
}
