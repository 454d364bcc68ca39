package policy

import (
	"fmt"
	"strings"

	"github.com/jar0582/schedsim/pkg/model"
)

// Constructor builds a fresh policy instance. Policies that do not use a
// quantum ignore the argument.
type Constructor func(quantum int) Policy

// Registry maps policy names to constructors. It is filled before any run
// starts and only read afterwards.
type Registry struct {
	ctors map[string]Constructor
	names []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry returns a registry holding every built-in policy.
func DefaultRegistry(mlfq MLFQConfig) *Registry {
	r := NewRegistry()
	r.Register("fifo", func(int) Policy { return NewFIFO() })
	r.Register("lifo", func(int) Policy { return NewLIFO() })
	r.Register("sjf", func(int) Policy { return NewSJF() })
	r.Register("priority", func(int) Policy { return NewPriority() })
	r.Register("rr", func(q int) Policy { return NewRoundRobin(q) })
	r.Register("srt", func(int) Policy { return NewSRT() })
	r.Register("mlfq", func(q int) Policy { return NewMLFQ(q, mlfq) })
	r.Register("preemptive_priority", func(int) Policy { return NewPreemptivePriority() })
	return r
}

// Register adds or replaces the constructor for name. Names are case
// insensitive.
func (r *Registry) Register(name string, ctor Constructor) {
	key := strings.ToLower(name)
	if _, exists := r.ctors[key]; !exists {
		r.names = append(r.names, key)
	}
	r.ctors[key] = ctor
}

// Create instantiates the policy registered under name.
func (r *Registry) Create(name string, quantum int) (Policy, error) {
	ctor, ok := r.ctors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", model.ErrPolicyNotFound, name, strings.Join(r.names, ", "))
	}
	return ctor(quantum), nil
}

// Names lists registered policies in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// UsesQuantum reports whether the policy bounds runs by a quantum.
func UsesQuantum(name string) bool {
	switch strings.ToLower(name) {
	case "rr", "mlfq":
		return true
	}
	return false
}
