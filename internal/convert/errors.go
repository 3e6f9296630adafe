package convert

import (
	"fmt"
	"strings"
)

// NoConverterError reports that no installed tool can handle an input
// extension.
type NoConverterError struct {
	Ext string
}

func (e *NoConverterError) Error() string {
	ext := strings.TrimSpace(e.Ext)
	if ext == "" {
		return "no compatible converter found"
	}
	return fmt.Sprintf("no compatible converter found for .%s files", ext)
}

// UnsupportedFormatError reports a requested output extension missing from a
// tool's declared output listing. It is only raised when that listing is
// non-empty; unknown listings are treated as permissive.
type UnsupportedFormatError struct {
	Tool      string
	Ext       string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("%s cannot write %s files", e.Tool, e.Ext)
	}
	return fmt.Sprintf("%s cannot write %s files; pick one of: %s",
		e.Tool, e.Ext, strings.Join(e.Supported, ", "))
}

// DestinationExistsError reports an output path that already exists while
// overwriting was not requested.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination already exists: %s (enable overwrite to replace it)", e.Path)
}

// ProcessError wraps an external tool failure with its captured output. The
// message carries the process-level error plus stdout and stderr, each only
// when non-empty, so the caller sees the full diagnostic context at once.
type ProcessError struct {
	Tool   string
	Err    error
	Stdout string
	Stderr string
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	b.WriteString(e.Tool + " failed")
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		b.WriteString("\n" + s)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString("\n" + s)
	}
	return b.String()
}

func (e *ProcessError) Unwrap() error { return e.Err }
