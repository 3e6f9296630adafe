package convert

import (
	"context"

	"github.com/DevDeepakBhattarai/file-forge/internal/tools"
	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// ToolResolver is the slice of the tool registry the resolver needs.
type ToolResolver interface {
	Resolve(ctx context.Context, kind tools.Kind) (tools.Descriptor, bool)
}

// Decision names the tool that should perform a conversion and the default
// output format to suggest for it. Decisions are produced per request and
// never cached; the registry's memoization keeps repeat lookups cheap.
type Decision struct {
	Kind          tools.Kind
	Descriptor    tools.Descriptor
	Category      formats.Category
	DefaultOutput string
}

// Resolver picks a converter for an input extension by consulting the tool
// registry, triggering its lazy probes on first use.
type Resolver struct {
	Registry ToolResolver
	// Preferences replaces the built-in per-category output rankings,
	// typically from the user's config. Categories left out keep the
	// built-in ranking.
	Preferences map[formats.Category][]string
}

func NewResolver(registry ToolResolver) *Resolver {
	return &Resolver{Registry: registry}
}

// Decide selects the converter for an input extension, in strict priority:
// confirmed input-set membership first with the image tool leading, then any
// available tool as a catch-all. The catch-all exists because a failed or
// incomplete format listing must not turn into a refusal; the tool's own
// error reporting is the authority on what it cannot read. The second return
// is false only when no tool of any kind is available.
func (r *Resolver) Decide(ctx context.Context, ext string) (Decision, bool) {
	norm := formats.Normalize(ext)

	if formats.IsImage(norm) {
		if desc, ok := r.Registry.Resolve(ctx, tools.KindImage); ok && desc.SupportsInput(norm) {
			return r.decision(tools.KindImage, desc, norm), true
		}
	}
	if desc, ok := r.Registry.Resolve(ctx, tools.KindMedia); ok && desc.SupportsInput(norm) {
		return r.decision(tools.KindMedia, desc, norm), true
	}
	if desc, ok := r.Registry.Resolve(ctx, tools.KindMarkup); ok && desc.SupportsInput(norm) {
		return r.decision(tools.KindMarkup, desc, norm), true
	}
	if desc, ok := r.Registry.Resolve(ctx, tools.KindOffice); ok && desc.SupportsInput(norm) {
		return r.decision(tools.KindOffice, desc, norm), true
	}

	for _, kind := range tools.Kinds() {
		if desc, ok := r.Registry.Resolve(ctx, kind); ok {
			return r.decision(kind, desc, norm), true
		}
	}

	return Decision{}, false
}

func (r *Resolver) decision(kind tools.Kind, desc tools.Descriptor, ext string) Decision {
	category := kind.Category(ext)
	return Decision{
		Kind:          kind,
		Descriptor:    desc,
		Category:      category,
		DefaultOutput: formats.PreferredOutputRanked(category, r.Preferences[category], desc.Outputs),
	}
}
