package web

import (
	"errors"
	"testing"

	"github.com/ardnew/tmplctx/scope"
)

func TestSessionMap_DeferredAcquisition(t *testing.T) {
	acquired := 0
	m := NewSessionMap(SessionFunc(func() (AttributeStore, error) {
		acquired++

		return Attributes{"user": "alice"}, nil
	}))

	if acquired != 0 {
		t.Fatal("constructing the view must not acquire the session")
	}

	v, err := m.Get("user")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if v != "alice" {
		t.Errorf("expected alice, got %v", v)
	}

	// The handle is cached: further reads reuse the first acquisition.
	if _, err := m.Get("user"); err != nil {
		t.Fatalf("get error: %v", err)
	}

	_ = m.Names()
	_ = m.Len()

	if acquired != 1 {
		t.Errorf("expected a single acquisition, got %d", acquired)
	}
}

func TestSessionMap_AcquireFailure(t *testing.T) {
	failure := errors.New("session backend down")

	calls := 0
	m := NewSessionMap(SessionFunc(func() (AttributeStore, error) {
		calls++

		return nil, failure
	}))

	_, err := m.Get("user")
	if !errors.Is(err, ErrSessionAcquire) {
		t.Fatalf("expected ErrSessionAcquire, got %v", err)
	}

	if !errors.Is(err, failure) {
		t.Error("expected underlying failure preserved in chain")
	}

	// Failures are not cached: the next read retries.
	if _, err := m.Get("user"); err == nil {
		t.Fatal("expected error on retry")
	}

	if calls != 2 {
		t.Errorf("expected retry after failure, got %d calls", calls)
	}

	// Enumeration reads as empty on failure; the error surfaces via Get.
	if m.Len() != 0 || m.Names() != nil {
		t.Error("failed acquisition must enumerate as empty")
	}
}

func TestSessionMap_ResolvesDeferredAttributes(t *testing.T) {
	m := NewSessionMap(SessionOf(Attributes{
		"lazy": scope.DeferredFunc(func() (any, error) {
			return "resolved", nil
		}),
	}))

	v, err := m.Get("lazy")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if v != "resolved" {
		t.Errorf("expected resolved, got %v", v)
	}
}

func TestSessionMap_PermissiveContains(t *testing.T) {
	m := NewSessionMap(SessionOf(Attributes{}))

	if !m.Contains("anything") {
		t.Error("key containment must answer true for any name")
	}

	if _, err := m.ContainsValue("x"); !errors.Is(err, ErrContainsValue) {
		t.Errorf("expected ErrContainsValue, got %v", err)
	}
}

func TestSessionMap_AbsentAttribute(t *testing.T) {
	m := NewSessionMap(SessionOf(Attributes{}))

	v, err := m.Get("missing")
	if err != nil {
		t.Fatalf("absent read must not fail: %v", err)
	}

	if v != nil {
		t.Errorf("expected nil for absent attribute, got %v", v)
	}
}
