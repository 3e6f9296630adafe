package tools

import (
	"strings"

	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// Kind identifies one of the four external converter tools.
type Kind string

const (
	KindImage  Kind = "image"  // ImageMagick
	KindMedia  Kind = "media"  // FFmpeg
	KindMarkup Kind = "markup" // Pandoc
	KindOffice Kind = "office" // LibreOffice
)

// Kinds returns all tool kinds in resolution priority order: the image tool
// is consulted first, the office suite last.
func Kinds() []Kind {
	return []Kind{KindImage, KindMedia, KindMarkup, KindOffice}
}

// ParseKind maps a user-supplied name, including common tool aliases, onto a
// Kind.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "image", "imagemagick", "magick":
		return KindImage, true
	case "media", "ffmpeg":
		return KindMedia, true
	case "markup", "pandoc":
		return KindMarkup, true
	case "office", "libreoffice", "soffice":
		return KindOffice, true
	}
	return "", false
}

func (k Kind) String() string {
	return string(k)
}

// DisplayName returns the human name of the underlying tool.
func (k Kind) DisplayName() string {
	if def, ok := toolDefinitions[k]; ok {
		return def.displayName
	}
	return string(k)
}

// EnvVar returns the environment variable that overrides this tool's
// executable path.
func (k Kind) EnvVar() string {
	if def, ok := toolDefinitions[k]; ok {
		return def.envVar
	}
	return ""
}

// Category classifies an input extension in the context of this tool kind.
// The document tools always convert documents and the image tool always
// images; the media tool splits audio from video by extension.
func (k Kind) Category(ext string) formats.Category {
	switch k {
	case KindImage:
		return formats.CategoryImage
	case KindMedia:
		return formats.MediaCategory(ext)
	case KindMarkup, KindOffice:
		return formats.CategoryDocument
	default:
		return formats.CategoryUnknown
	}
}
