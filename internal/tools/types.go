package tools

import "github.com/DevDeepakBhattarai/file-forge/pkg/formats"

// Source records which resolution strategy produced an executable path.
type Source string

const (
	SourceUnknown  Source = ""
	SourceOverride Source = "override" // explicit path from env or config
	SourceSystem   Source = "system"   // found on PATH
	SourceScan     Source = "scan"     // well-known install directory
)

// Descriptor captures a resolved external tool: where it lives and which
// formats it reads and writes. Descriptors are immutable once resolved; the
// registry hands out copies and never mutates a published one. Empty format
// sets mean the listing is unknown, not that the tool accepts nothing.
type Descriptor struct {
	Kind    Kind     `json:"kind"`
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Version string   `json:"version,omitempty"`
	Source  Source   `json:"source"`
	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty"`
}

// SupportsInput reports whether the declared input listing contains ext.
// False for an empty listing; callers that treat unknown listings as
// permissive must check len(Inputs) themselves.
func (d Descriptor) SupportsInput(ext string) bool {
	return containsExt(d.Inputs, ext)
}

// SupportsOutput reports whether the declared output listing contains ext.
func (d Descriptor) SupportsOutput(ext string) bool {
	return containsExt(d.Outputs, ext)
}

func containsExt(set []string, ext string) bool {
	norm := formats.Normalize(ext)
	for _, entry := range set {
		if entry == norm {
			return true
		}
	}
	return false
}

// Status is the display-facing availability row for a tool kind.
type Status struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name"`
	Available bool     `json:"available"`
	Path      string   `json:"path,omitempty"`
	Version   string   `json:"version,omitempty"`
	Source    Source   `json:"source,omitempty"`
	Inputs    int      `json:"input_formats"`
	Outputs   int      `json:"output_formats"`
	Error     string   `json:"error,omitempty"`
	Hints     []string `json:"hints,omitempty"`
}
