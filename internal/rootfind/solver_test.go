package rootfind

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestDefaultFactory(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory()

	if got, want := f.List(), []string{"bisection", "fixedpoint", "newton"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	for _, key := range f.List() {
		s, err := f.Get(key)
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		if string(s.Method()) != key {
			t.Errorf("Get(%q).Method() = %q", key, s.Method())
		}
		if s.Name() == "" {
			t.Errorf("Get(%q).Name() is empty", key)
		}
	}

	if _, err := f.Get("secant"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Get(secant) err = %v, want ErrUnknownMethod", err)
	}
}

func TestDefaultFactory_GetAllIsACopy(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory()
	all := f.GetAll()
	delete(all, "newton")
	if _, err := f.Get("newton"); err != nil {
		t.Errorf("mutating GetAll result changed the registry: %v", err)
	}
}

func TestDefaultFactory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := NewDefaultFactory()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			f.Register("bisection", BisectionSolver{})
		}()
		go func() {
			defer wg.Done()
			_ = f.List()
			_, _ = f.Get("newton")
		}()
	}
	wg.Wait()
}

func TestMethodDisplayName(t *testing.T) {
	t.Parallel()

	tests := map[Method]string{
		MethodBisection:  "Bisection",
		MethodNewton:     "Newton-Raphson",
		MethodFixedPoint: "Fixed Point",
		Method("custom"): "custom",
	}
	for m, want := range tests {
		if got := m.DisplayName(); got != want {
			t.Errorf("%q.DisplayName() = %q, want %q", m, got, want)
		}
	}
}
