package template

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/ledger-types/errors"
)

// Registry maps template identifiers to descriptors. It is safe for
// concurrent use. The last registration under an identifier wins.
type Registry struct {
	entries map[string]Descriptor
	logger  *zap.Logger
	mu      sync.RWMutex
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registration events. The package
// logger is used otherwise.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{entries: make(map[string]Descriptor)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Register stores d under d.ID(), replacing any earlier descriptor with the
// same identifier. Choices of the replaced template keep pointing to it.
func (r *Registry) Register(d Descriptor) {
	id := d.ID()

	r.mu.Lock()
	_, replaced := r.entries[id]
	r.entries[id] = d
	r.mu.Unlock()

	if replaced {
		r.log().Warn("template replaced", zap.String("template", id))
		return
	}
	r.log().Debug("template registered",
		zap.String("template", id),
		zap.Strings("choices", d.ChoiceNames()))
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	r.mu.RLock()
	d, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.TemplateNotFound(id)
	}
	return d, nil
}

// MustLookup is Lookup that panics when id is not registered.
func (r *Registry) MustLookup(id string) Descriptor {
	d, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}
	return d
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by Register and Lookup.
func Default() *Registry { return defaultRegistry }

// Register stores d in the default registry.
func Register(d Descriptor) { defaultRegistry.Register(d) }

// Lookup resolves id in the default registry.
func Lookup(id string) (Descriptor, error) { return defaultRegistry.Lookup(id) }

// MustLookup resolves id in the default registry and panics when it is missing.
func MustLookup(id string) Descriptor { return defaultRegistry.MustLookup(id) }
