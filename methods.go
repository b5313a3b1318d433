package aojia

// Rect is a screen or client area given by its top-left and bottom-right
// corners.
type Rect struct {
	X1, Y1, X2, Y2 int32
}

// Point is a coordinate pair.
type Point struct {
	X, Y int32
}

// OSInfo is the system information reported by GetOs.
type OSInfo struct {
	Version     string
	VersionNum  string
	BuildNumber int32
	SystemDir   string
}

// WindowFilter selects windows for FindWindow and EnumWindow. Empty strings
// and zero values are passed through unchanged; the object treats them as
// "any".
type WindowFilter struct {
	Parent  int32
	ProName string
	ProID   int32
	Class   string
	Title   string
	Type    int32
	T       int32
}

// PicSearch describes an image search inside Area.
type PicSearch struct {
	Area Rect
	// PicName lists image files separated by "|".
	PicName string
	// ColorP is the color tolerance, e.g. "000000".
	ColorP string
	Sim    float64
	Dir    int32
	Type   int32
}

// PicMatch is the result of FindPic.
type PicMatch struct {
	Pic string
	Point
}

// OcrRequest describes a text recognition inside Area.
type OcrRequest struct {
	Area    Rect
	Str     string
	Color   string
	Sim     float64
	TypeC   int32
	TypeD   int32
	TypeR   int32
	TypeT   int32
	HLine   string
	PicName string
}

// VerS returns the version of the automation object, e.g. "1.0.0".
func (c *Client) VerS() (string, error) {
	return c.callString(sigVerS)
}

// SetPath sets the working directory for relative file names.
func (c *Client) SetPath(path string) (int32, error) {
	ret, _, err := c.callInt(sigSetPath, path)
	return ret, err
}

// SetErrorMsg controls whether the object shows error dialogs.
func (c *Client) SetErrorMsg(msg int32) (int32, error) {
	ret, _, err := c.callInt(sigSetErrorMsg, msg)
	return ret, err
}

// SetThread sets the number of worker threads the object uses.
func (c *Client) SetThread(tn int32) (int32, error) {
	ret, _, err := c.callInt(sigSetThread, tn)
	return ret, err
}

// GetModulePath returns the path of module mn loaded in the process given
// by pid or hwnd.
func (c *Client) GetModulePath(pid, hwnd int32, mn string, typ int32) (string, error) {
	return c.callString(sigGetModulePath, pid, hwnd, mn, typ)
}

// GetMachineCode returns the machine code identifying this computer.
func (c *Client) GetMachineCode() (string, error) {
	return c.callString(sigGetMachineCode)
}

// GetOs reports the operating system. A system directory that cannot be
// read as text fails the call with a *variant.CoercionError while the other
// fields are still filled in.
func (c *Client) GetOs(typ int32) (int32, OSInfo, error) {
	ret, res, err := c.callInt(sigGetOs, typ)
	info := OSInfo{
		Version:     outString(res, "SV"),
		VersionNum:  outString(res, "SVN"),
		BuildNumber: outInt(res, "LVBN"),
	}
	if err != nil {
		return ret, info, err
	}
	dir, err := res.Out("SDir").AsString()
	info.SystemDir = dir
	return ret, info, err
}

// EnumWindow lists the handles of matching windows separated by "|".
func (c *Client) EnumWindow(f WindowFilter, flag int32) (string, error) {
	return c.callString(sigEnumWindow, f.Parent, f.ProName, f.ProID, f.Class, f.Title, f.Type, flag, f.T)
}

// FindWindow returns the handle of the first matching window.
func (c *Client) FindWindow(f WindowFilter) (int32, error) {
	ret, _, err := c.callInt(sigFindWindow, f.Parent, f.ProName, f.ProID, f.Class, f.Title, f.Type, f.T)
	return ret, err
}

// CreateWindows creates a window at x, y of the given size. eWidth and
// eHeight size its edit area.
func (c *Client) CreateWindows(x, y, width, height, eWidth, eHeight, typ int32) (int32, error) {
	ret, _, err := c.callInt(sigCreateWindows, x, y, width, height, eWidth, eHeight, typ)
	return ret, err
}

// GetRemoteProcAddress returns the address of fn exported by module mn in
// another process, or -1.
func (c *Client) GetRemoteProcAddress(pid, hwnd int32, mn, fn string) (int64, error) {
	res, err := c.s.Call(sigGetRemoteProcAddress, pid, hwnd, mn, fn)
	if err != nil {
		return -1, err
	}
	return res.Value.Int64Or(-1), nil
}

// KQHouTai binds the window for background input and capture.
func (c *Client) KQHouTai(hwnd int32, screen, keyboard, mouse, flag string, typ int32) (int32, error) {
	ret, _, err := c.callInt(sigKQHouTai, hwnd, screen, keyboard, mouse, flag, typ)
	return ret, err
}

// GBHouTai releases the background binding.
func (c *Client) GBHouTai() (int32, error) {
	ret, _, err := c.callInt(sigGBHouTai)
	return ret, err
}

// GetCPU returns the processor type and id.
func (c *Client) GetCPU() (ret int32, cpuType, cpuID string, err error) {
	ret, res, err := c.callInt(sigGetCPU)
	return ret, outString(res, "Type"), outString(res, "CPUID"), err
}

// GetClientSize returns the client area size of hwnd.
func (c *Client) GetClientSize(hwnd int32) (ret, width, height int32, err error) {
	ret, res, err := c.callInt(sigGetClientSize, hwnd)
	return ret, outInt(res, "Width"), outInt(res, "Height"), err
}

// GetWindowSize returns the outer size of hwnd.
func (c *Client) GetWindowSize(hwnd int32) (ret, width, height int32, err error) {
	ret, res, err := c.callInt(sigGetWindowSize, hwnd)
	return ret, outInt(res, "Width"), outInt(res, "Height"), err
}

// FindPic searches for the first matching image. ret is the index of the
// image found, or -1.
func (c *Client) FindPic(q PicSearch) (int32, PicMatch, error) {
	a := q.Area
	ret, res, err := c.callInt(sigFindPic, a.X1, a.Y1, a.X2, a.Y2, q.PicName, q.ColorP, q.Sim, q.Dir, q.Type)
	m := PicMatch{
		Pic:   outString(res, "Pic"),
		Point: Point{X: outInt(res, "x"), Y: outInt(res, "y")},
	}
	return ret, m, err
}

// FindPicEx returns every match as text.
func (c *Client) FindPicEx(q PicSearch, typeT int32) (string, error) {
	a := q.Area
	return c.callString(sigFindPicEx, a.X1, a.Y1, a.X2, a.Y2, q.PicName, q.ColorP, q.Sim, q.Dir, q.Type, typeT)
}

// ClientToScreen returns the screen position of the client area origin of
// hwnd.
func (c *Client) ClientToScreen(hwnd int32) (int32, Point, error) {
	ret, res, err := c.callInt(sigClientToScreen, hwnd)
	return ret, Point{X: outInt(res, "x"), Y: outInt(res, "y")}, err
}

// ClientOrScreen converts p between client and screen coordinates of hwnd;
// typ selects the direction.
func (c *Client) ClientOrScreen(hwnd int32, p Point, typ int32) (int32, Point, error) {
	ret, res, err := c.callInt(sigClientOrScreen, hwnd, p.X, p.Y, typ)
	return ret, Point{X: outInt(res, "x"), Y: outInt(res, "y")}, err
}

// CompressFile compresses sf into df at the given level.
func (c *Client) CompressFile(sf, df string, typ, level int32) (int32, error) {
	ret, _, err := c.callInt(sigCompressFile, sf, df, typ, level)
	return ret, err
}

// UnCompressFile restores sf, written by CompressFile, into df.
func (c *Client) UnCompressFile(sf, df string, typ int32) (int32, error) {
	ret, _, err := c.callInt(sigUnCompressFile, sf, df, typ)
	return ret, err
}

// SetFont selects the font used by DrawTextD on hwnd.
func (c *Client) SetFont(hwnd int32, name string, size, weight, italic, underline, strikeOut int32) (int32, error) {
	ret, _, err := c.callInt(sigSetFont, hwnd, name, size, weight, italic, underline, strikeOut)
	return ret, err
}

// SetTextD sets the text area and layout used by DrawTextD.
func (c *Client) SetTextD(hwnd int32, area Rect, row, dir int32) (int32, error) {
	ret, _, err := c.callInt(sigSetTextD, hwnd, area.X1, area.Y1, area.X2, area.Y2, row, dir)
	return ret, err
}

// DrawTextD draws text over hwnd.
func (c *Client) DrawTextD(hwnd int32, text, color, bkColor string) (int32, error) {
	ret, _, err := c.callInt(sigDrawTextD, hwnd, text, color, bkColor)
	return ret, err
}

// LeftClick clicks the left mouse button.
func (c *Client) LeftClick() (int32, error) {
	ret, _, err := c.callInt(sigLeftClick)
	return ret, err
}

// LeftDown presses the left mouse button.
func (c *Client) LeftDown() (int32, error) {
	ret, _, err := c.callInt(sigLeftDown)
	return ret, err
}

// LeftUp releases the left mouse button.
func (c *Client) LeftUp() (int32, error) {
	ret, _, err := c.callInt(sigLeftUp)
	return ret, err
}

// MoveTo moves the cursor.
func (c *Client) MoveTo(x, y int32) (int32, error) {
	ret, _, err := c.callInt(sigMoveTo, x, y)
	return ret, err
}

// WheelDown scrolls the mouse wheel down one notch.
func (c *Client) WheelDown() (int32, error) {
	ret, _, err := c.callInt(sigWheelDown)
	return ret, err
}

// YanShi sleeps a random number of milliseconds in [rMin, rMax].
func (c *Client) YanShi(rMin, rMax int32) (int32, error) {
	ret, _, err := c.callInt(sigYanShi, rMin, rMax)
	return ret, err
}

// GetMousePos returns the cursor position.
func (c *Client) GetMousePos(typ int32) (int32, Point, error) {
	ret, res, err := c.callInt(sigGetMousePos, typ)
	return ret, Point{X: outInt(res, "x"), Y: outInt(res, "y")}, err
}

// LoadDict loads the character dictionary file dName into slot dNum.
func (c *Client) LoadDict(dNum int32, dName string) (int32, error) {
	ret, _, err := c.callInt(sigLoadDict, dNum, dName)
	return ret, err
}

// SetDict selects the dictionary used by Ocr.
func (c *Client) SetDict(dNum int32) (int32, error) {
	ret, _, err := c.callInt(sigSetDict, dNum)
	return ret, err
}

// Ocr recognizes text inside r.Area.
func (c *Client) Ocr(r OcrRequest) (string, error) {
	a := r.Area
	return c.callString(sigOcr,
		a.X1, a.Y1, a.X2, a.Y2, r.Str, r.Color, r.Sim,
		r.TypeC, r.TypeD, r.TypeR, r.TypeT, r.HLine, r.PicName)
}
