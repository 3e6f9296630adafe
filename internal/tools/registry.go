package tools

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Logger matches the subset of *log.Logger the registry needs.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// probeTimeout bounds a single availability probe or format listing. The
// office suite can take several seconds on a cold start.
const probeTimeout = 10 * time.Second

// Registry lazily resolves the four tool kinds and memoizes the outcome,
// including the negative "tool absent" outcome, for its own lifetime. It is
// safe for concurrent use; concurrent first resolutions of one kind share a
// single probe.
type Registry struct {
	runner    Runner
	logger    Logger
	lookPath  func(file string) (string, error)
	getenv    func(key string) string
	overrides map[Kind]string

	mu      sync.Mutex
	entries map[Kind]*registryEntry
}

// registryEntry distinguishes "not yet probed" (resolved false) from a
// memoized negative result (resolved true, desc nil).
type registryEntry struct {
	mu       sync.Mutex
	resolved bool
	desc     *Descriptor
}

// Option configures a Registry.
type Option func(*Registry)

// WithRunner substitutes the subprocess runner.
func WithRunner(runner Runner) Option {
	return func(r *Registry) { r.runner = runner }
}

// WithLogger routes probe diagnostics to the given logger.
func WithLogger(logger Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithLookPath substitutes PATH lookup, primarily for tests.
func WithLookPath(fn func(file string) (string, error)) Option {
	return func(r *Registry) { r.lookPath = fn }
}

// WithGetenv substitutes environment access, primarily for tests.
func WithGetenv(fn func(key string) string) Option {
	return func(r *Registry) { r.getenv = fn }
}

// WithOverrides supplies per-kind executable paths from the config file.
// Environment variables still win over these.
func WithOverrides(paths map[Kind]string) Option {
	return func(r *Registry) {
		if len(paths) == 0 {
			return
		}
		r.overrides = make(map[Kind]string, len(paths))
		for kind, path := range paths {
			r.overrides[kind] = path
		}
	}
}

// NewRegistry builds a registry with production defaults.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		runner:   CmdRunner{},
		logger:   noopLogger{},
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
		entries:  map[Kind]*registryEntry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) logf(format string, v ...any) {
	if r == nil || r.logger == nil {
		return
	}
	r.logger.Printf(format, v...)
}

// Resolve returns the descriptor for a tool kind, probing on first use. The
// second return is false when no usable executable could be found; that
// outcome is memoized too, so later calls do not re-probe. A resolution
// abandoned because ctx was cancelled is not memoized and a later call may
// retry.
func (r *Registry) Resolve(ctx context.Context, kind Kind) (Descriptor, bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	entry := r.entry(kind)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.resolved {
		if entry.desc == nil {
			return Descriptor{}, false
		}
		return *entry.desc, true
	}

	desc := r.resolveKind(ctx, kind)
	if ctx.Err() != nil {
		return Descriptor{}, false
	}

	entry.resolved = true
	entry.desc = desc
	if desc == nil {
		return Descriptor{}, false
	}
	return *desc, true
}

func (r *Registry) entry(kind Kind) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[kind]
	if !ok {
		e = &registryEntry{}
		r.entries[kind] = e
	}
	return e
}

// resolveKind probes candidates in priority order; the first executable whose
// version command succeeds wins. All failures degrade, none propagate.
func (r *Registry) resolveKind(ctx context.Context, kind Kind) *Descriptor {
	def := toolDefinitions[kind]

	for _, cand := range r.candidates(kind) {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		res, err := r.runner.Run(probeCtx, cand.path, def.versionArgs, RunOptions{})
		cancel()
		if err != nil {
			r.logf("%s: probe %s failed: %v", def.displayName, cand.path, err)
			continue
		}

		desc := &Descriptor{
			Kind:    kind,
			Name:    def.displayName,
			Path:    cand.path,
			Version: parseVersion(string(res.Stdout)),
			Source:  cand.source,
		}

		listCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		r.loadCapabilities(listCtx, desc)
		cancel()

		r.logf("%s: resolved %s (%s, %d inputs, %d outputs)",
			def.displayName, cand.path, cand.source, len(desc.Inputs), len(desc.Outputs))
		return desc
	}

	r.logf("%s: no usable executable found", def.displayName)
	return nil
}

// Statuses resolves every kind and reports the outcomes for display.
func (r *Registry) Statuses(ctx context.Context) []Status {
	statuses := make([]Status, 0, len(Kinds()))
	for _, kind := range Kinds() {
		def := toolDefinitions[kind]
		status := Status{Kind: kind.String(), Name: def.displayName}

		if desc, ok := r.Resolve(ctx, kind); ok {
			status.Available = true
			status.Path = desc.Path
			status.Version = desc.Version
			status.Source = desc.Source
			status.Inputs = len(desc.Inputs)
			status.Outputs = len(desc.Outputs)
		} else {
			status.Error = "not found"
			status.Hints = installHints(kind)
		}

		statuses = append(statuses, status)
	}
	return statuses
}
