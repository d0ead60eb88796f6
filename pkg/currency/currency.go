// Package currency defines the bank's supported currency set and its metadata.
//
// The bank operates on a fixed set of currencies (RON, EUR, USD). Codes are
// ISO 4217 (3 uppercase letters); metadata carries the number of minor-unit
// decimals used by the money package and a display symbol for presentation.
package currency

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Code represents an ISO 4217 currency code (e.g., "RON", "EUR").
type Code string

// Currencies the bank supports out of the box.
const (
	RON Code = "RON"
	EUR Code = "EUR"
	USD Code = "USD"
)

// DefaultDecimals is the number of minor-unit decimals assumed when
// metadata is missing.
const DefaultDecimals = 2

var (
	// ErrInvalidFormat is returned when a code is not 3 uppercase letters.
	ErrInvalidFormat = errors.New("invalid currency code format")

	// ErrUnsupported is returned when a code is well-formed but not registered.
	ErrUnsupported = errors.New("unsupported currency")
)

// Normalize trims whitespace and uppercases a raw code, so user and file
// input like " ron " resolves to RON.
func Normalize(raw string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsValidFormat checks that the code is exactly 3 uppercase ASCII letters.
func (c Code) IsValidFormat() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

// Registry is a thread-safe registry of supported currencies.
type Registry struct {
	mu      sync.RWMutex
	entries map[Code]Meta
}

// NewRegistry creates a registry seeded with the bank's supported currencies.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[Code]Meta)}
	defaults := map[Code]Meta{
		RON: {Decimals: 2, Symbol: "lei"},
		EUR: {Decimals: 2, Symbol: "€"},
		USD: {Decimals: 2, Symbol: "$"},
	}
	for code, meta := range defaults {
		_ = r.Register(code, meta)
	}
	return r
}

// Register adds or updates a currency in the registry.
func (r *Registry) Register(code Code, meta Meta) error {
	if !code.IsValidFormat() {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}
	if meta.Decimals < 0 || meta.Decimals > 8 {
		return fmt.Errorf("%w: %q has invalid decimals %d", ErrInvalidFormat, code, meta.Decimals)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[code] = meta
	return nil
}

// Get returns the metadata for the given code.
func (r *Registry) Get(code Code) (Meta, error) {
	if !code.IsValidFormat() {
		return Meta{}, fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.entries[code]
	if !ok {
		return Meta{}, fmt.Errorf("%w: %s", ErrUnsupported, code)
	}
	return meta, nil
}

// IsSupported reports whether the code is registered.
func (r *Registry) IsSupported(code Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[code]
	return ok
}

// List returns all registered codes in lexical order.
func (r *Registry) List() []Code {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]Code, 0, len(r.entries))
	for code := range r.entries {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Count returns the number of registered currencies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Global registry instance backing the package-level functions.
var globalRegistry = NewRegistry()

// Register adds or updates a currency in the global registry.
func Register(code Code, meta Meta) error {
	return globalRegistry.Register(code, meta)
}

// Get returns metadata for the given code from the global registry.
func Get(code Code) (Meta, error) {
	return globalRegistry.Get(code)
}

// IsSupported reports whether the code is registered globally.
func IsSupported(code Code) bool {
	return globalRegistry.IsSupported(code)
}

// List returns the globally registered codes in lexical order.
func List() []Code {
	return globalRegistry.List()
}

// Count returns the number of globally registered currencies.
func Count() int {
	return globalRegistry.Count()
}

// MinorUnits returns the decimals for a code, falling back to
// DefaultDecimals when the code carries no metadata.
func MinorUnits(code Code) int {
	meta, err := Get(code)
	if err != nil {
		return DefaultDecimals
	}
	return meta.Decimals
}
