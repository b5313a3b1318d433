package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	aojia "github.com/smnsjas/go-aojia"
	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/dispatch/dispatchtest"
	"github.com/smnsjas/go-aojia/session"
	"github.com/smnsjas/go-aojia/variant"
)

type testApartment struct {
	obj *dispatchtest.Fake
}

func (a *testApartment) Enter() error                           { return nil }
func (a *testApartment) Create(string) (dispatch.Object, error) { return a.obj, nil }
func (a *testApartment) Leave()                                 {}

func newTestClient(t *testing.T, obj *dispatchtest.Fake) *aojia.Client {
	t.Helper()
	c, err := aojia.New(session.Config{Apartment: &testApartment{obj: obj}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRunCall_Declared(t *testing.T) {
	obj := dispatchtest.New().Handle("GetClientSize", func(inv *dispatchtest.Invocation) (variant.Value, error) {
		if got := inv.Arg(0).Tag(); got != variant.Int32 {
			t.Errorf("Hwnd should be converted to I32, got %s", got)
		}
		inv.SetOut(1, variant.NewInt32(800))
		inv.SetOut(2, variant.NewInt32(600))
		return variant.NewInt32(1), nil
	})
	c := newTestClient(t, obj)

	var out bytes.Buffer
	if err := runCall(&out, c, "getclientsize", []string{"1234"}); err != nil {
		t.Fatalf("runCall failed: %v", err)
	}
	for _, want := range []string{"result  I32(1)", "Width   I32(800)", "Height  I32(600)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunCall_DeclaredArgErrors(t *testing.T) {
	c := newTestClient(t, dispatchtest.New())

	var out bytes.Buffer
	err := runCall(&out, c, "MoveTo", []string{"1"})
	if !errors.Is(err, dispatch.ErrArgCount) {
		t.Errorf("expected ErrArgCount, got %v", err)
	}
	err = runCall(&out, c, "MoveTo", []string{"left", "2"})
	if !errors.Is(err, dispatch.ErrArgType) {
		t.Errorf("expected ErrArgType, got %v", err)
	}
}

func TestRunCall_Literal(t *testing.T) {
	obj := dispatchtest.New().Handle("GetColor", func(inv *dispatchtest.Invocation) (variant.Value, error) {
		inv.SetOut(2, variant.NewString("ffffff"))
		return variant.NewInt32(1), nil
	})
	c := newTestClient(t, obj)

	var out bytes.Buffer
	for _, marker := range []string{"&color", "out:color"} {
		out.Reset()
		if err := runCall(&out, c, "GetColor", []string{"10", "20", marker}); err != nil {
			t.Fatalf("runCall %s failed: %v", marker, err)
		}
		if !strings.Contains(out.String(), `color   S("ffffff")`) {
			t.Errorf("%s: unexpected output:\n%s", marker, out.String())
		}
	}

	err := runCall(&out, c, "Missing", nil)
	if !errors.Is(err, dispatch.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	cfg, err := loadConfig(&globalFlags{
		loader:   "ARegJ64.dll",
		library:  "AoJia64.dll",
		resolve:  "per-call",
		logLevel: "debug",
	})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Provider.Loader != "ARegJ64.dll" || cfg.Provider.Library != "AoJia64.dll" {
		t.Errorf("unexpected provider %v", cfg.Provider)
	}
	if cfg.Resolve != "per-call" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected resolve=%s log_level=%s", cfg.Resolve, cfg.LogLevel)
	}

	if _, err := loadConfig(&globalFlags{loader: "ARegJ64.dll"}); err == nil {
		t.Error("expected error for loader without library")
	}
}

func TestCompleteMethod(t *testing.T) {
	got := completeMethod("getc")
	want := map[string]bool{"GetCPU": true, "GetClientSize": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d completions, got %v", len(want), got)
	}
	for _, g := range got {
		if !want[g] {
			t.Errorf("unexpected completion %s", g)
		}
	}
	if completeMethod("VerS 1") != nil {
		t.Error("expected no completion after the method name")
	}
}

func TestRunScript(t *testing.T) {
	obj := dispatchtest.New().
		Return("VerS", variant.NewString("1.0.0")).
		Return("MoveTo", variant.NewInt32(1))
	c := newTestClient(t, obj)

	script := `# comment
VerS
MoveTo 10 "20"
Bogus
:quit
VerS
`
	var out bytes.Buffer
	if err := runScript(c, strings.NewReader(script), &out); err != nil {
		t.Fatalf("runScript failed: %v", err)
	}

	if n := len(obj.Calls); n != 2 {
		t.Errorf("expected 2 calls before :quit, got %d", n)
	}
	if y := obj.Calls[1].Arg(1).Int32Or(-1); y != 20 {
		t.Errorf("quoted argument of a declared method should convert, got %d", y)
	}
	if !strings.Contains(out.String(), "error:") {
		t.Errorf("expected an error line for the unknown method:\n%s", out.String())
	}
}
