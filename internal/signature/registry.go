package signature

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrEmptyName     = errors.New("signature has no name")
	ErrNoRules       = errors.New("signature defines no rule groups")
	ErrDuplicateName = errors.New("duplicate signature name")
)

// Registry is an immutable, ordered set of signatures.
// It is safe for any number of concurrent readers.
type Registry struct {
	signatures []*Signature
	byName     map[string]*Signature
}

// NewRegistry validates sigs and builds a registry that keeps their order.
func NewRegistry(sigs []*Signature) (*Registry, error) {
	r := &Registry{
		signatures: make([]*Signature, 0, len(sigs)),
		byName:     make(map[string]*Signature, len(sigs)),
	}

	for i, sig := range sigs {
		if sig == nil || sig.Name == "" {
			return nil, fmt.Errorf("signature %d: %w", i, ErrEmptyName)
		}
		if !sig.HasRules() {
			return nil, fmt.Errorf("%s: %w", sig.Name, ErrNoRules)
		}
		if _, exists := r.byName[sig.Name]; exists {
			return nil, fmt.Errorf("%s: %w", sig.Name, ErrDuplicateName)
		}
		r.byName[sig.Name] = sig
		r.signatures = append(r.signatures, sig)
	}

	return r, nil
}

// Signatures returns the signatures in registration order.
// The returned slice is a copy; the signatures themselves must not be modified.
func (r *Registry) Signatures() []*Signature {
	out := make([]*Signature, len(r.signatures))
	copy(out, r.signatures)
	return out
}

// Lookup finds a signature by its exact name.
func (r *Registry) Lookup(name string) (*Signature, bool) {
	sig, ok := r.byName[name]
	return sig, ok
}

// Len returns the number of registered signatures.
func (r *Registry) Len() int {
	return len(r.signatures)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry, built on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(builtin())
		if err != nil {
			panic("signature: invalid built-in registry: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
