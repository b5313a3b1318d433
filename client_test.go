package aojia

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/dispatch/dispatchtest"
	"github.com/smnsjas/go-aojia/session"
	"github.com/smnsjas/go-aojia/variant"
)

type testApartment struct {
	obj *dispatchtest.Fake
}

func (a *testApartment) Enter() error { return nil }

func (a *testApartment) Create(string) (dispatch.Object, error) { return a.obj, nil }

func (a *testApartment) Leave() {}

func newTestClient(t *testing.T, obj *dispatchtest.Fake) *Client {
	t.Helper()
	c, err := New(session.Config{Apartment: &testApartment{obj: obj}})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_VerS(t *testing.T) {
	obj := dispatchtest.New().Return("VerS", variant.NewString("1.0.0"))
	c := newTestClient(t, obj)

	ver, err := c.VerS()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", ver)
	assert.Empty(t, obj.Last().Args)
}

func TestClient_StringResultSurfacesCoercionError(t *testing.T) {
	obj := dispatchtest.New().Return("GetMachineCode", variant.NewNull())
	c := newTestClient(t, obj)

	code, err := c.GetMachineCode()
	assert.Equal(t, "", code)
	var ce *variant.CoercionError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, variant.ErrNullValue)
}

func TestClient_NumericResultFailsClosed(t *testing.T) {
	obj := dispatchtest.New().Return("LeftClick", variant.NewString("not a number"))
	c := newTestClient(t, obj)

	ret, err := c.LeftClick()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), ret)
}

func TestClient_GetClientSize(t *testing.T) {
	obj := dispatchtest.New().Handle("GetClientSize", func(inv *dispatchtest.Invocation) (variant.Value, error) {
		assert.Equal(t, int32(1234), inv.Arg(0).Int32Or(0))
		inv.SetOut(1, variant.NewInt32(800))
		inv.SetOut(2, variant.NewInt32(600))
		return variant.NewInt32(1), nil
	})
	c := newTestClient(t, obj)

	ret, w, h, err := c.GetClientSize(1234)
	require.NoError(t, err)
	assert.Equal(t, int32(1), ret)
	assert.Equal(t, int32(800), w)
	assert.Equal(t, int32(600), h)

	// Call convention order: outs first, Hwnd last.
	args := obj.Last().Args
	require.Len(t, args, 3)
	assert.True(t, args[0].IsRef())
	assert.True(t, args[1].IsRef())
	assert.Equal(t, variant.Int32, args[2].Tag())
}

func TestClient_RemoteFailureFillsFallbacks(t *testing.T) {
	obj := dispatchtest.New().
		Fail("GetMousePos", dispatch.StatusException).
		Fail("GetCPU", dispatch.StatusFail).
		Fail("FindPic", dispatch.StatusException)
	c := newTestClient(t, obj)

	ret, p, err := c.GetMousePos(0)
	assert.ErrorIs(t, err, dispatch.ErrInvocation)
	assert.Equal(t, int32(-1), ret)
	assert.Equal(t, Point{X: -1, Y: -1}, p)

	var ie *dispatch.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, dispatch.StatusException, ie.Code)

	ret, typ, id, err := c.GetCPU()
	assert.ErrorIs(t, err, dispatch.ErrInvocation)
	assert.Equal(t, int32(-1), ret)
	assert.Equal(t, "", typ)
	assert.Equal(t, "", id)

	ret, m, err := c.FindPic(PicSearch{PicName: "a.bmp"})
	assert.Error(t, err)
	assert.Equal(t, int32(-1), ret)
	assert.Equal(t, PicMatch{Pic: "", Point: Point{X: -1, Y: -1}}, m)
}

func TestClient_OutValuesFailClosed(t *testing.T) {
	obj := dispatchtest.New().Handle("FindPic", func(inv *dispatchtest.Invocation) (variant.Value, error) {
		inv.SetOut(9, variant.NewNull())
		inv.SetOut(10, variant.NewString("twelve"))
		inv.SetOut(11, variant.NewFloat64(20.5))
		return variant.NewInt32(0), nil
	})
	c := newTestClient(t, obj)

	ret, m, err := c.FindPic(PicSearch{
		Area:    Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080},
		PicName: "a.bmp|b.bmp",
		ColorP:  "000000",
		Sim:     0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), ret)
	assert.Equal(t, "", m.Pic)
	assert.Equal(t, int32(-1), m.X)
	assert.Equal(t, int32(20), m.Y, "floats round half to even")
}

func TestClient_FindPicArguments(t *testing.T) {
	obj := dispatchtest.New().Return("FindPic", variant.NewInt32(0))
	c := newTestClient(t, obj)

	_, _, err := c.FindPic(PicSearch{
		Area:    Rect{X1: 1, Y1: 2, X2: 3, Y2: 4},
		PicName: "a.bmp",
		ColorP:  "",
		Sim:     0.85,
		Dir:     5,
		Type:    6,
	})
	require.NoError(t, err)

	inv := obj.Last()
	require.Len(t, inv.Args, 12)
	for i, want := range []int32{1, 2, 3, 4} {
		assert.Equal(t, want, inv.Arg(i).Int32Or(0))
	}
	assert.Equal(t, "a.bmp", inv.Arg(4).StringOr(""))
	assert.True(t, inv.Arg(5).IsEmpty(), "empty strings are passed as absent")
	assert.Equal(t, variant.Float64, inv.Arg(6).Tag())
	assert.Equal(t, int32(5), inv.Arg(7).Int32Or(0))
	assert.Equal(t, int32(6), inv.Arg(8).Int32Or(0))
}

func TestClient_GetOs(t *testing.T) {
	tests := []struct {
		name    string
		dir     variant.Value
		wantDir string
		wantErr error
	}{
		{"text", variant.NewString(`C:\Windows\system32`), `C:\Windows\system32`, nil},
		{"unconvertible", variant.NewNull(), "", variant.ErrNullValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := dispatchtest.New().Handle("GetOs", func(inv *dispatchtest.Invocation) (variant.Value, error) {
				inv.SetOut(0, variant.NewString("Windows 10"))
				inv.SetOut(1, variant.NewString("10.0"))
				inv.SetOut(2, variant.NewString("19045"))
				inv.SetOut(3, tt.dir)
				return variant.NewInt32(1), nil
			})
			c := newTestClient(t, obj)

			ret, info, err := c.GetOs(0)
			assert.Equal(t, int32(1), ret)
			assert.Equal(t, "Windows 10", info.Version)
			assert.Equal(t, "10.0", info.VersionNum)
			assert.Equal(t, int32(19045), info.BuildNumber)
			assert.Equal(t, tt.wantDir, info.SystemDir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_GetRemoteProcAddress(t *testing.T) {
	obj := dispatchtest.New().Return("GetRemoteProcAddress", variant.NewInt64(0x7FF800001000))
	c := newTestClient(t, obj)

	addr, err := c.GetRemoteProcAddress(100, 0, "kernel32.dll", "Sleep")
	require.NoError(t, err)
	assert.Equal(t, int64(0x7FF800001000), addr)
	assert.Equal(t, "Sleep", obj.Last().Arg(3).StringOr(""))
}

func TestClient_Ocr(t *testing.T) {
	obj := dispatchtest.New().Handle("Ocr", func(inv *dispatchtest.Invocation) (variant.Value, error) {
		require.Len(t, inv.Args, 13)
		assert.Equal(t, 0.9, inv.Arg(6).Interface())
		assert.Equal(t, "dict.png", inv.Arg(12).StringOr(""))
		return variant.NewString("hello"), nil
	})
	c := newTestClient(t, obj)

	text, err := c.Ocr(OcrRequest{
		Area:    Rect{X2: 100, Y2: 30},
		Str:     "hello",
		Color:   "ffffff-000000",
		Sim:     0.9,
		PicName: "dict.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestClient_SimpleCalls(t *testing.T) {
	obj := dispatchtest.New()
	for _, s := range signatures {
		obj.Return(s.Name, variant.NewInt32(1))
	}
	c := newTestClient(t, obj)

	calls := []struct {
		name string
		call func() (int32, error)
		args int
	}{
		{"SetPath", func() (int32, error) { return c.SetPath(`C:\img`) }, 1},
		{"SetErrorMsg", func() (int32, error) { return c.SetErrorMsg(0) }, 1},
		{"SetThread", func() (int32, error) { return c.SetThread(4) }, 1},
		{"FindWindow", func() (int32, error) { return c.FindWindow(WindowFilter{Title: "Notepad"}) }, 7},
		{"CreateWindows", func() (int32, error) { return c.CreateWindows(0, 0, 640, 480, 0, 0, 1) }, 7},
		{"KQHouTai", func() (int32, error) { return c.KQHouTai(1, "gdi", "normal", "normal", "", 0) }, 6},
		{"GBHouTai", c.GBHouTai, 0},
		{"CompressFile", func() (int32, error) { return c.CompressFile("a", "b", 0, 9) }, 4},
		{"UnCompressFile", func() (int32, error) { return c.UnCompressFile("b", "a", 0) }, 3},
		{"SetFont", func() (int32, error) { return c.SetFont(1, "Arial", 12, 400, 0, 0, 0) }, 7},
		{"SetTextD", func() (int32, error) { return c.SetTextD(1, Rect{X2: 10, Y2: 10}, 1, 0) }, 7},
		{"DrawTextD", func() (int32, error) { return c.DrawTextD(1, "hi", "ff0000", "") }, 4},
		{"LeftClick", c.LeftClick, 0},
		{"LeftDown", c.LeftDown, 0},
		{"LeftUp", c.LeftUp, 0},
		{"MoveTo", func() (int32, error) { return c.MoveTo(10, 20) }, 2},
		{"WheelDown", c.WheelDown, 0},
		{"YanShi", func() (int32, error) { return c.YanShi(10, 20) }, 2},
		{"LoadDict", func() (int32, error) { return c.LoadDict(0, "dict.txt") }, 2},
		{"SetDict", func() (int32, error) { return c.SetDict(0) }, 1},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			ret, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, int32(1), ret)
			assert.Equal(t, tt.name, obj.Last().Name)
			assert.Len(t, obj.Last().Args, tt.args)
		})
	}
}

// layout formats raw arguments in call convention order, "&" for out slots.
func layout(args []variant.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.IsRef() {
			parts[i] = "&"
		} else {
			parts[i] = a.String()
		}
	}
	return strings.Join(parts, " ")
}

func TestClient_ArgumentLayout(t *testing.T) {
	tests := []struct {
		name   string
		outs   map[int]variant.Value
		result variant.Value
		call   func(c *Client) ([]interface{}, error)
		layout string
		want   []interface{}
	}{
		{
			name:   "ClientOrScreen",
			outs:   map[int]variant.Value{3: variant.NewInt32(111), 4: variant.NewInt32(222)},
			result: variant.NewInt32(1),
			call: func(c *Client) ([]interface{}, error) {
				ret, p, err := c.ClientOrScreen(7, Point{X: 10, Y: 20}, 1)
				return []interface{}{ret, p}, err
			},
			layout: "I32(1) & & I32(20) I32(10) I32(7)",
			want:   []interface{}{int32(1), Point{X: 111, Y: 222}},
		},
		{
			name:   "ClientToScreen",
			outs:   map[int]variant.Value{1: variant.NewInt32(30), 2: variant.NewInt32(40)},
			result: variant.NewInt32(1),
			call: func(c *Client) ([]interface{}, error) {
				ret, p, err := c.ClientToScreen(7)
				return []interface{}{ret, p}, err
			},
			layout: "& & I32(7)",
			want:   []interface{}{int32(1), Point{X: 30, Y: 40}},
		},
		{
			name:   "GetMousePos",
			outs:   map[int]variant.Value{0: variant.NewInt32(5), 1: variant.NewString("6")},
			result: variant.NewInt32(1),
			call: func(c *Client) ([]interface{}, error) {
				ret, p, err := c.GetMousePos(2)
				return []interface{}{ret, p}, err
			},
			layout: "I32(2) & &",
			want:   []interface{}{int32(1), Point{X: 5, Y: 6}},
		},
		{
			name:   "GetWindowSize",
			outs:   map[int]variant.Value{1: variant.NewInt32(1024), 2: variant.NewInt32(768)},
			result: variant.NewInt32(1),
			call: func(c *Client) ([]interface{}, error) {
				ret, w, h, err := c.GetWindowSize(9)
				return []interface{}{ret, w, h}, err
			},
			layout: "& & I32(9)",
			want:   []interface{}{int32(1), int32(1024), int32(768)},
		},
		{
			name:   "EnumWindow",
			result: variant.NewString("100|200"),
			call: func(c *Client) ([]interface{}, error) {
				list, err := c.EnumWindow(WindowFilter{ProName: "notepad.exe", Title: "Untitled", Type: 1, T: 2}, 3)
				return []interface{}{list}, err
			},
			layout: `I32(2) I32(3) I32(1) S("Untitled") Empty I32(0) S("notepad.exe") I32(0)`,
			want:   []interface{}{"100|200"},
		},
		{
			name:   "GetModulePath",
			result: variant.NewString(`C:\Windows\System32\kernel32.dll`),
			call: func(c *Client) ([]interface{}, error) {
				path, err := c.GetModulePath(100, 0, "kernel32.dll", 0)
				return []interface{}{path}, err
			},
			layout: `I32(0) S("kernel32.dll") I32(0) I32(100)`,
			want:   []interface{}{`C:\Windows\System32\kernel32.dll`},
		},
		{
			name:   "FindPicEx",
			result: variant.NewString("0,10,20|1,30,40"),
			call: func(c *Client) ([]interface{}, error) {
				list, err := c.FindPicEx(PicSearch{
					Area:    Rect{X1: 1, Y1: 2, X2: 3, Y2: 4},
					PicName: "a.bmp",
					ColorP:  "101010",
					Sim:     0.9,
					Type:    1,
				}, 2)
				return []interface{}{list}, err
			},
			layout: `I32(2) I32(1) I32(0) Db(0.9) S("101010") S("a.bmp") I32(4) I32(3) I32(2) I32(1)`,
			want:   []interface{}{"0,10,20|1,30,40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := dispatchtest.New().Handle(tt.name, func(inv *dispatchtest.Invocation) (variant.Value, error) {
				for i, v := range tt.outs {
					inv.SetOut(i, v)
				}
				return tt.result, nil
			})
			c := newTestClient(t, obj)

			got, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.layout, layout(obj.Last().Args))
		})
	}
}

func TestClient_MoveToOrder(t *testing.T) {
	obj := dispatchtest.New().Return("MoveTo", variant.NewInt32(1))
	c := newTestClient(t, obj)

	_, err := c.MoveTo(10, 20)
	require.NoError(t, err)
	args := obj.Last().Args
	assert.Equal(t, int32(20), args[0].Int32Or(0), "y is first in call convention order")
	assert.Equal(t, int32(10), args[1].Int32Or(0))
}

func TestClient_Call(t *testing.T) {
	obj := dispatchtest.New().Handle("GetColor", func(inv *dispatchtest.Invocation) (variant.Value, error) {
		inv.SetOut(2, variant.NewString("ffffff"))
		return variant.NewInt32(1), nil
	})
	c := newTestClient(t, obj)

	call, err := c.Call("GetColor",
		dispatch.InParam("x", variant.NewInt32(5)),
		dispatch.InParam("y", variant.NewInt32(6)),
		dispatch.OutParam("color"))
	require.NoError(t, err)
	assert.Equal(t, "ffffff", call.Out("color").StringOr(""))

	_, err = c.Call("NoSuchMethod")
	assert.ErrorIs(t, err, dispatch.ErrUnknownMethod)
}

func TestClient_UnknownMethodDoesNotBreakSession(t *testing.T) {
	obj := dispatchtest.New().Return("VerS", variant.NewString("1.0.0"))
	c := newTestClient(t, obj)

	_, err := c.LeftClick()
	require.True(t, errors.Is(err, dispatch.ErrUnknownMethod))

	ver, err := c.VerS()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", ver)
}

func TestSignatures(t *testing.T) {
	list := Signatures()
	assert.Len(t, list, 35)
	assert.True(t, sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Name < list[j].Name }))

	seen := make(map[string]bool)
	for _, s := range list {
		assert.False(t, seen[s.Name], "duplicate %s", s.Name)
		seen[s.Name] = true
	}

	s, ok := LookupSignature("getmousepos")
	require.True(t, ok)
	assert.Equal(t, "GetMousePos(out x I32, out y I32, Type I32) I32", s.String())

	_, ok = LookupSignature("Nope")
	assert.False(t, ok)
}
