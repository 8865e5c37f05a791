package web

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/tmplctx/scope"
)

func newTestContext(opts ...Option) *Context {
	return NewContext(
		Attributes{"shared": "exchange-wide"},
		QueryParams{"q": {"one", "two"}},
		SessionOf(Attributes{"user": "alice"}),
		opts...,
	)
}

func TestContext_ReservedNamesAlwaysPresent(t *testing.T) {
	c := NewContext(Attributes{}, QueryParams{}, SessionOf(Attributes{}))

	if !c.Contains("param") || !c.Contains("session") {
		t.Error("reserved names must be present even with empty backing state")
	}
}

func TestContext_ReservedNamesReturnViews(t *testing.T) {
	c := newTestContext()

	v, err := c.Get("param")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if _, ok := v.(*ParamMap); !ok {
		t.Fatalf("expected the param view itself, got %T", v)
	}

	v, err = c.Get("session")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if _, ok := v.(*SessionMap); !ok {
		t.Fatalf("expected the session view itself, got %T", v)
	}
}

func TestContext_ReservedNamesRejectWrites(t *testing.T) {
	c := newTestContext()

	for _, name := range []string{"param", "session"} {
		if err := c.Set(name, 1); !errors.Is(err, ErrReservedName) {
			t.Errorf("Set(%s): expected ErrReservedName, got %v", name, err)
		}

		if err := c.Remove(name); !errors.Is(err, ErrReservedName) {
			t.Errorf("Remove(%s): expected ErrReservedName, got %v", name, err)
		}
	}

	c.IncreaseLevel()

	if err := c.Set("session", 1); !errors.Is(err, ErrReservedName) {
		t.Error("reserved-name check must hold at any level")
	}
}

func TestContext_SetAllValidatesBeforeWriting(t *testing.T) {
	c := newTestContext()

	err := c.SetAll(map[string]any{"ok": 1, "param": 2})
	if !errors.Is(err, ErrReservedName) {
		t.Fatalf("expected ErrReservedName, got %v", err)
	}

	// Validation is all-or-nothing: the valid pair must not have been set.
	if c.IsLocal("ok") || func() bool { v, _ := c.Get("ok"); return v != nil }() {
		t.Error("no pair may commit when any name is reserved")
	}

	if err := c.SetAll(nil); err != nil {
		t.Errorf("empty batch must be a no-op, got %v", err)
	}
}

func TestContext_ExchangeFallbackOnReadMiss(t *testing.T) {
	c := newTestContext()

	v, err := c.Get("shared")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if v != "exchange-wide" {
		t.Errorf("expected exchange attribute on scope miss, got %v", v)
	}

	// Exchange attributes bypass the leveled map and are immune to
	// rollback.
	c.IncreaseLevel()

	if err := c.DecreaseLevel(); err != nil {
		t.Fatalf("decrease error: %v", err)
	}

	if v, _ := c.Get("shared"); v != "exchange-wide" {
		t.Error("exchange attribute must survive level decrease")
	}
}

func TestContext_ScopeShadowsExchange(t *testing.T) {
	c := newTestContext()

	if err := c.Set("shared", "scoped"); err != nil {
		t.Fatalf("set error: %v", err)
	}

	if v, _ := c.Get("shared"); v != "scoped" {
		t.Error("scope binding must shadow exchange attribute")
	}

	// An explicitly-set nil still shadows: only true absence falls through.
	if err := c.Set("shared", nil); err != nil {
		t.Fatalf("set error: %v", err)
	}

	if v, _ := c.Get("shared"); v != nil {
		t.Errorf("nil binding must shadow exchange attribute, got %v", v)
	}

	if err := c.Remove("shared"); err != nil {
		t.Fatalf("remove error: %v", err)
	}

	if v, _ := c.Get("shared"); v != "exchange-wide" {
		t.Error("removing the binding must uncover the exchange attribute")
	}
}

func TestContext_AbsentEverywhere(t *testing.T) {
	c := newTestContext()

	v, err := c.Get("missing")
	if err != nil {
		t.Fatalf("absent read must not fail: %v", err)
	}

	if v != nil {
		t.Errorf("expected nil for absent name, got %v", v)
	}

	if c.Contains("missing") {
		t.Error("absent name must not be contained")
	}
}

func TestContext_NamesUnionExcludesReserved(t *testing.T) {
	c := NewContext(
		Attributes{"shared": 1, "dup": 2},
		QueryParams{},
		SessionOf(Attributes{}),
		WithVariables(map[string]any{"dup": 3, "model": 4}),
	)

	names := c.Names()
	want := []string{"dup", "model", "shared"}

	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	for _, name := range names {
		if name == "param" || name == "session" {
			t.Errorf("reserved name %q must never be enumerated", name)
		}
	}
}

func TestContext_ResolvesDeferredVariables(t *testing.T) {
	c := newTestContext()

	if err := c.Set("lazy", scope.DeferredFunc(func() (any, error) {
		return "resolved", nil
	})); err != nil {
		t.Fatalf("set error: %v", err)
	}

	v, err := c.Get("lazy")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if v != "resolved" {
		t.Errorf("expected resolved value, never the wrapper, got %v", v)
	}
}

func TestContext_LeveledLifecycle(t *testing.T) {
	c := newTestContext()

	if err := c.Set("a", 1); err != nil {
		t.Fatalf("set error: %v", err)
	}

	c.IncreaseLevel()

	if err := c.Set("b", 2); err != nil {
		t.Fatalf("set error: %v", err)
	}

	names := c.Names()
	for _, want := range []string{"a", "b"} {
		if _, found := find(names, want); !found {
			t.Errorf("expected %s in names %v", want, names)
		}
	}

	if err := c.DecreaseLevel(); err != nil {
		t.Fatalf("decrease error: %v", err)
	}

	if c.Contains("b") {
		t.Error("expected b removed after decrease")
	}

	if !c.Contains("a") {
		t.Error("expected a to survive decrease")
	}

	if v, _ := c.Get("a"); v != 1 {
		t.Errorf("expected 1, got %v", v)
	}
}

func TestContext_DebugStringsIncludeExchange(t *testing.T) {
	c := newTestContext()

	for _, s := range []string{c.String(), c.StringByLevel()} {
		if !strings.Contains(s, "[[EXCHANGE: {shared=exchange-wide}]]") {
			t.Errorf("expected exchange section in %q", s)
		}
	}
}

func TestContext_WithVariablesSkipsReserved(t *testing.T) {
	c := NewContext(
		Attributes{},
		QueryParams{"q": {"x"}},
		SessionOf(Attributes{}),
		WithVariables(map[string]any{"param": "bogus", "ok": 1}),
	)

	v, err := c.Get("param")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	if _, ok := v.(*ParamMap); !ok {
		t.Errorf("view must win over initial variables, got %T", v)
	}

	if v, _ := c.Get("ok"); v != 1 {
		t.Errorf("expected ordinary initial variable set, got %v", v)
	}
}

func find(names []string, want string) (int, bool) {
	for i, name := range names {
		if name == want {
			return i, true
		}
	}

	return 0, false
}
