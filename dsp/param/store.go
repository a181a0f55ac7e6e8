package param

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// Errors returned by the parameter store.
var (
	ErrEmptyName        = errors.New("parameter name must not be empty")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrDuplicateName    = errors.New("duplicate parameter name")
	ErrInvalidValue     = errors.New("parameter value must be finite")
	ErrUninitialized    = errors.New("parameter store not created with NewStore")
)

// Store is a fixed set of named parameters with lock-free access.
// Get and Set may be called concurrently from any goroutine.
type Store struct {
	specs  []Spec
	index  map[string]int
	values []atomic.Uint64
}

// NewStore creates a store for the given specs, each set to its default.
func NewStore(specs ...Spec) (*Store, error) {
	if len(specs) == 0 {
		return nil, errors.New("param: at least one spec is required")
	}

	s := &Store{
		specs:  make([]Spec, len(specs)),
		index:  make(map[string]int, len(specs)),
		values: make([]atomic.Uint64, len(specs)),
	}

	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}

		if _, dup := s.index[spec.Name]; dup {
			return nil, fmt.Errorf("param %q: %w", spec.Name, ErrDuplicateName)
		}

		s.specs[i] = spec
		s.index[spec.Name] = i
		s.values[i].Store(math.Float64bits(spec.Default))
	}

	return s, nil
}

// NewDefaultStore creates a store with [DefaultSpecs]. It panics only if
// DefaultSpecs fails validation.
func NewDefaultStore() *Store {
	s, err := NewStore(DefaultSpecs()...)
	if err != nil {
		panic(err)
	}

	return s
}

// Get returns the plain value of name, or 0 for an unknown name.
func (s *Store) Get(name string) float64 {
	i, ok := s.index[name]
	if !ok {
		return 0
	}

	return math.Float64frombits(s.values[i].Load())
}

// Bool reports whether the value of name is at least 0.5.
func (s *Store) Bool(name string) bool {
	return s.Get(name) >= 0.5
}

// Set clamps v to the range of name and stores it.
func (s *Store) Set(name string, v float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("param %q: %w", name, ErrUnknownParameter)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("param %q: %w: %v", name, ErrInvalidValue, v)
	}

	s.values[i].Store(math.Float64bits(s.specs[i].Clamp(v)))

	return nil
}

// SetBool stores 1 for true and 0 for false.
func (s *Store) SetBool(name string, on bool) error {
	v := 0.0
	if on {
		v = 1
	}

	return s.Set(name, v)
}

// Normalized returns the skewed [0, 1] position of name.
func (s *Store) Normalized(name string) float64 {
	i, ok := s.index[name]
	if !ok {
		return 0
	}

	return s.specs[i].Normalize(s.Get(name))
}

// SetNormalized maps n from [0, 1] to the plain range, snaps it to the step
// and stores it. This is the path host automation takes.
func (s *Store) SetNormalized(name string, n float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("param %q: %w", name, ErrUnknownParameter)
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("param %q: %w: %v", name, ErrInvalidValue, n)
	}

	spec := s.specs[i]
	s.values[i].Store(math.Float64bits(spec.Snap(spec.Denormalize(n))))

	return nil
}

// Spec returns the description of name.
func (s *Store) Spec(name string) (Spec, bool) {
	i, ok := s.index[name]
	if !ok {
		return Spec{}, false
	}

	return s.specs[i], true
}

// Specs returns the descriptions in registration order.
func (s *Store) Specs() []Spec {
	out := make([]Spec, len(s.specs))
	copy(out, s.specs)

	return out
}

// ResetDefaults sets every parameter back to its default.
func (s *Store) ResetDefaults() {
	for i, spec := range s.specs {
		s.values[i].Store(math.Float64bits(spec.Default))
	}
}

// State is the persisted form of a store: parameter name to plain value.
type State map[string]float64

// Snapshot captures the current value of every parameter.
func (s *Store) Snapshot() State {
	st := make(State, len(s.specs))
	for i, spec := range s.specs {
		st[spec.Name] = math.Float64frombits(s.values[i].Load())
	}

	return st
}

// Restore applies the values in st. Names the store does not know are
// ignored so older or newer states still load. Invalid values abort the
// restore with an error; values applied before that point stay applied.
// A zero Store returns ErrUninitialized.
func (s *Store) Restore(st State) error {
	if s.index == nil {
		return fmt.Errorf("param: restore: %w", ErrUninitialized)
	}

	for _, spec := range s.specs {
		v, ok := st[spec.Name]
		if !ok {
			continue
		}

		if err := s.Set(spec.Name, v); err != nil {
			return fmt.Errorf("param: restore: %w", err)
		}
	}

	return nil
}

// MarshalJSON encodes the current snapshot as a JSON object.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON decodes a JSON object and restores it. The store must have
// been created with NewStore or NewDefaultStore.
func (s *Store) UnmarshalJSON(data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("param: decode state: %w", err)
	}

	return s.Restore(st)
}
