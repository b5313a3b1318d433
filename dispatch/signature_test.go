package dispatch

import (
	"errors"
	"testing"

	"github.com/smnsjas/go-aojia/variant"
)

var clientOrScreen = Signature{
	Name: "ClientOrScreen",
	Params: []ParamSpec{
		{Name: "Hwnd", Tag: variant.Int32},
		{Name: "xz", Tag: variant.Int32},
		{Name: "yz", Tag: variant.Int32},
		{Name: "x", Tag: variant.Int32, Dir: Out},
		{Name: "y", Tag: variant.Int32, Dir: Out},
		{Name: "Type", Tag: variant.Int32},
	},
	Result: variant.Int32,
}

func TestSignature_Counts(t *testing.T) {
	if got := clientOrScreen.NumIn(); got != 4 {
		t.Errorf("NumIn: expected 4, got %d", got)
	}
	if got := clientOrScreen.NumOut(); got != 2 {
		t.Errorf("NumOut: expected 2, got %d", got)
	}
}

func TestSignature_Bind(t *testing.T) {
	a, err := clientOrScreen.Bind(100, 5, 6, 1)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if a.Len() != len(clientOrScreen.Params) {
		t.Fatalf("expected %d args, got %d", len(clientOrScreen.Params), a.Len())
	}

	// Call convention order: Type, y, x, yz, xz, Hwnd.
	vals := a.Values()
	want := []struct {
		ref bool
		v   variant.Value
	}{
		{false, variant.NewInt32(1)},
		{true, variant.Value{}},
		{true, variant.Value{}},
		{false, variant.NewInt32(6)},
		{false, variant.NewInt32(5)},
		{false, variant.NewInt32(100)},
	}
	for i, w := range want {
		if w.ref {
			if !vals[i].IsRef() {
				t.Errorf("position %d: expected Ref, got %v", i, vals[i])
			}
			continue
		}
		if !variant.Equal(vals[i], w.v) {
			t.Errorf("position %d: expected %v, got %v", i, w.v, vals[i])
		}
	}
}

func TestSignature_BindConvertsToDeclaredTag(t *testing.T) {
	sig := Signature{
		Name: "Mixed",
		Params: []ParamSpec{
			{Name: "n", Tag: variant.Int64},
			{Name: "sim", Tag: variant.Float64},
			{Name: "s", Tag: variant.String},
		},
	}
	a, err := sig.Bind(int32(7), 1, "")
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if got := a.At(0); !variant.Equal(got, variant.NewInt64(7)) {
		t.Errorf("n: expected I64(7), got %v", got)
	}
	if got := a.At(1); !variant.Equal(got, variant.NewFloat64(1)) {
		t.Errorf("sim: expected Db(1), got %v", got)
	}
	if got := a.At(2); got.Tag() != variant.Empty {
		t.Errorf("s: expected Empty, got %v", got)
	}
}

func TestSignature_BindErrors(t *testing.T) {
	if _, err := clientOrScreen.Bind(1, 2); !errors.Is(err, ErrArgCount) {
		t.Errorf("expected ErrArgCount, got %v", err)
	}
	if _, err := clientOrScreen.Bind(1, 2, 3, 4, 5, 6); !errors.Is(err, ErrArgCount) {
		t.Errorf("expected ErrArgCount for too many values, got %v", err)
	}

	_, err := clientOrScreen.Bind("window", 2, 3, 4)
	if !errors.Is(err, ErrArgType) {
		t.Errorf("expected ErrArgType, got %v", err)
	}
	if !errors.Is(err, variant.ErrTypeMismatch) {
		t.Errorf("expected wrapped ErrTypeMismatch, got %v", err)
	}

	if _, err := clientOrScreen.Bind(struct{}{}, 2, 3, 4); !errors.Is(err, variant.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSignature_String(t *testing.T) {
	want := "ClientOrScreen(Hwnd I32, xz I32, yz I32, out x I32, out y I32, Type I32) I32"
	if got := clientOrScreen.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
