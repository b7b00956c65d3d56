package rootfind

import (
	"fmt"
	"sort"
	"sync"
)

// Solver is the common interface of the three root-finding methods.
// Implementations are stateless; Solve may be called concurrently.
type Solver interface {
	// Name returns a human-readable method name.
	Name() string
	// Method returns the method identifier.
	Method() Method
	// Solve runs the method and always returns a result, never panics.
	Solve(p Problem, cfg SolveConfig) SolveResult
}

// Verify interface compliance.
var (
	_ Solver = BisectionSolver{}
	_ Solver = NewtonSolver{}
	_ Solver = FixedPointSolver{}
)

// SolverFactory resolves solvers by key.
type SolverFactory interface {
	// Get returns the solver registered under key.
	Get(key string) (Solver, error)
	// List returns the registered keys in sorted order.
	List() []string
	// GetAll returns a copy of the registry.
	GetAll() map[string]Solver
	// Register adds or replaces the solver under key.
	Register(key string, s Solver)
}

// DefaultFactory is a thread-safe SolverFactory.
type DefaultFactory struct {
	mu      sync.RWMutex
	solvers map[string]Solver
}

// NewDefaultFactory returns a factory with the three built-in methods
// registered under their Method keys.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{solvers: make(map[string]Solver, 3)}
	f.Register(string(MethodBisection), BisectionSolver{})
	f.Register(string(MethodNewton), NewtonSolver{})
	f.Register(string(MethodFixedPoint), FixedPointSolver{})
	return f
}

// Get returns the solver registered under key.
func (f *DefaultFactory) Get(key string) (Solver, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.solvers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, key)
	}
	return s, nil
}

// List returns the registered keys sorted alphabetically.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.solvers))
	for k := range f.solvers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Solver {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]Solver, len(f.solvers))
	for k, v := range f.solvers {
		out[k] = v
	}
	return out
}

// Register adds or replaces the solver under key.
func (f *DefaultFactory) Register(key string, s Solver) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.solvers[key] = s
}
