package tools

import (
	"regexp"
	"strings"
)

var versionNumberRegex = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+(?:-[0-9]+)?`)

// parseVersion extracts a short version from a tool's version banner, e.g.
// "Version: ImageMagick 7.1.1-21 Q16-HDRI" yields "7.1.1-21". When no
// version-shaped token is found the banner's first line is returned as is.
func parseVersion(output string) string {
	line := firstLine(strings.TrimSpace(output))
	if match := versionNumberRegex.FindString(line); match != "" {
		return match
	}
	return line
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
