// Package tokens loads and serves the canonical design-token registry.
// The registry is read once before the pipeline starts and is read-only
// for the lifetime of an analysis run, so its lookups need no locking.
package tokens

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Token is one canonical design-token definition.
type Token struct {
	Name  string // "--spacing-4"
	Value string // "16px", normalized at load time
}

// Registry maps token names to resolved values, plus a reverse index from
// normalized value to token names for value-equality resolution.
type Registry struct {
	byName  map[string]Token
	byValue map[string][]string // normalized value -> token names, sorted
}

// LoadError is the fatal failure mode: analysis cannot proceed without a
// token ground truth.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("token registry %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Normalizer is the value-normalization hook the registry applies to token
// values at load time. It must match the normalization the pipeline applies
// to extracted literals, otherwise value-equality resolution misses.
type Normalizer func(value string) (normalized string, unit string)

// Load reads a YAML token file of the form:
//
//	tokens:
//	  --spacing-4: 16px
//	  --color-text-primary: "#1f2937"
//
// A flat top-level mapping (no "tokens" key) is accepted too.
func Load(path string, norm Normalizer) (*Registry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	section := k
	if k.Exists("tokens") {
		section = k.Cut("tokens")
	}

	reg := New()
	for _, key := range section.Keys() {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		value := section.String(key)
		if value == "" {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("token %s has no value", name)}
		}
		reg.add(name, value, norm)
	}

	if reg.Len() == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("no tokens defined")}
	}
	return reg, nil
}

// New returns an empty registry. Tests build registries directly through
// Add instead of loading a file.
func New() *Registry {
	return &Registry{
		byName:  make(map[string]Token),
		byValue: make(map[string][]string),
	}
}

// Add registers a token with an already-normalized value.
func (r *Registry) Add(name, value string) {
	r.add(name, value, nil)
}

func (r *Registry) add(name, value string, norm Normalizer) {
	normalized := strings.TrimSpace(value)
	if norm != nil {
		normalized, _ = norm(normalized)
	}
	r.byName[name] = Token{Name: name, Value: normalized}
	names := append(r.byValue[normalized], name)
	sort.Strings(names)
	r.byValue[normalized] = names
}

// Lookup resolves a token by name.
func (r *Registry) Lookup(name string) (Token, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// NamesForValue returns the token names whose resolved value equals the
// given normalized value, sorted for determinism. Empty when the value is
// off-scale (defined by no token at all).
func (r *Registry) NamesForValue(normalized string) []string {
	return r.byValue[normalized]
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int { return len(r.byName) }

// Names returns all token names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
