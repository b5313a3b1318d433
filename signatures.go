package aojia

import (
	"sort"
	"strings"

	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/variant"
)

func in(name string, tag variant.Tag) dispatch.ParamSpec {
	return dispatch.ParamSpec{Name: name, Tag: tag, Dir: dispatch.In}
}

func out(name string, tag variant.Tag) dispatch.ParamSpec {
	return dispatch.ParamSpec{Name: name, Tag: tag, Dir: dispatch.Out}
}

func sig(name string, result variant.Tag, params ...dispatch.ParamSpec) dispatch.Signature {
	return dispatch.Signature{Name: name, Params: params, Result: result}
}

const (
	i32 = variant.Int32
	i64 = variant.Int64
	f64 = variant.Float64
	str = variant.String
)

// Parameters are listed in caller-visible order.
var (
	sigVerS           = sig("VerS", str)
	sigSetPath        = sig("SetPath", i32, in("Path", str))
	sigSetErrorMsg    = sig("SetErrorMsg", i32, in("Msg", i32))
	sigSetThread      = sig("SetThread", i32, in("TN", i32))
	sigGetModulePath  = sig("GetModulePath", str, in("PID", i32), in("Hwnd", i32), in("MN", str), in("Type", i32))
	sigGetMachineCode = sig("GetMachineCode", str)
	sigGetOs          = sig("GetOs", i32,
		out("SV", str), out("SVN", str), out("LVBN", i32), out("SDir", str), in("Type", i32))

	sigEnumWindow = sig("EnumWindow", str,
		in("Parent", i32), in("ProName", str), in("ProId", i32), in("Class", str),
		in("Title", str), in("Type", i32), in("Flag", i32), in("T", i32))
	sigFindWindow = sig("FindWindow", i32,
		in("Parent", i32), in("ProName", str), in("ProId", i32), in("Class", str),
		in("Title", str), in("Type", i32), in("T", i32))
	sigCreateWindows = sig("CreateWindows", i32,
		in("x", i32), in("y", i32), in("Width", i32), in("Height", i32),
		in("EWidth", i32), in("EHeight", i32), in("Type", i32))
	sigGetRemoteProcAddress = sig("GetRemoteProcAddress", i64,
		in("PID", i32), in("Hwnd", i32), in("MN", str), in("Func", str))

	sigKQHouTai = sig("KQHouTai", i32,
		in("Hwnd", i32), in("Screen", str), in("Keyboard", str), in("Mouse", str),
		in("Flag", str), in("Type", i32))
	sigGBHouTai = sig("GBHouTai", i32)
	sigGetCPU   = sig("GetCPU", i32, out("Type", str), out("CPUID", str))

	sigGetClientSize = sig("GetClientSize", i32, in("Hwnd", i32), out("Width", i32), out("Height", i32))
	sigGetWindowSize = sig("GetWindowSize", i32, in("Hwnd", i32), out("Width", i32), out("Height", i32))

	sigFindPic = sig("FindPic", i32,
		in("x1", i32), in("y1", i32), in("x2", i32), in("y2", i32),
		in("PicName", str), in("ColorP", str), in("Sim", f64), in("Dir", i32), in("Type", i32),
		out("Pic", str), out("x", i32), out("y", i32))
	sigFindPicEx = sig("FindPicEx", str,
		in("x1", i32), in("y1", i32), in("x2", i32), in("y2", i32),
		in("PicName", str), in("ColorP", str), in("Sim", f64), in("Dir", i32), in("Type", i32),
		in("TypeT", i32))

	sigClientToScreen = sig("ClientToScreen", i32, in("Hwnd", i32), out("x", i32), out("y", i32))
	sigClientOrScreen = sig("ClientOrScreen", i32,
		in("Hwnd", i32), in("xz", i32), in("yz", i32), out("x", i32), out("y", i32), in("Type", i32))

	sigCompressFile   = sig("CompressFile", i32, in("SF", str), in("DF", str), in("Type", i32), in("Level", i32))
	sigUnCompressFile = sig("UnCompressFile", i32, in("SF", str), in("DF", str), in("Type", i32))

	sigSetFont = sig("SetFont", i32,
		in("Hwnd", i32), in("Name", str), in("Size", i32), in("Weight", i32),
		in("Italic", i32), in("Underline", i32), in("StrikeOut", i32))
	sigSetTextD = sig("SetTextD", i32,
		in("Hwnd", i32), in("x1", i32), in("y1", i32), in("x2", i32), in("y2", i32),
		in("Row", i32), in("Dir", i32))
	sigDrawTextD = sig("DrawTextD", i32, in("Hwnd", i32), in("Text", str), in("Color", str), in("BkColor", str))

	sigLeftClick   = sig("LeftClick", i32)
	sigLeftDown    = sig("LeftDown", i32)
	sigLeftUp      = sig("LeftUp", i32)
	sigMoveTo      = sig("MoveTo", i32, in("x", i32), in("y", i32))
	sigWheelDown   = sig("WheelDown", i32)
	sigYanShi      = sig("YanShi", i32, in("RMin", i32), in("RMax", i32))
	sigGetMousePos = sig("GetMousePos", i32, out("x", i32), out("y", i32), in("Type", i32))

	sigLoadDict = sig("LoadDict", i32, in("DNum", i32), in("DName", str))
	sigSetDict  = sig("SetDict", i32, in("DNum", i32))
	sigOcr      = sig("Ocr", str,
		in("x1", i32), in("y1", i32), in("x2", i32), in("y2", i32),
		in("Str", str), in("Color", str), in("Sim", f64),
		in("TypeC", i32), in("TypeD", i32), in("TypeR", i32), in("TypeT", i32),
		in("HLine", str), in("PicName", str))
)

var signatures = []dispatch.Signature{
	sigVerS, sigSetPath, sigSetErrorMsg, sigSetThread, sigGetModulePath,
	sigGetMachineCode, sigGetOs, sigEnumWindow, sigFindWindow, sigCreateWindows,
	sigGetRemoteProcAddress, sigKQHouTai, sigGBHouTai, sigGetCPU, sigGetClientSize,
	sigGetWindowSize, sigFindPic, sigFindPicEx, sigClientToScreen, sigClientOrScreen,
	sigCompressFile, sigUnCompressFile, sigSetFont, sigSetTextD, sigDrawTextD,
	sigLeftClick, sigLeftDown, sigLeftUp, sigMoveTo, sigWheelDown,
	sigYanShi, sigGetMousePos, sigLoadDict, sigSetDict, sigOcr,
}

// Signatures returns the declared methods sorted by name.
func Signatures() []dispatch.Signature {
	list := append([]dispatch.Signature(nil), signatures...)
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// LookupSignature finds a declared method, ignoring case as the object does.
func LookupSignature(name string) (dispatch.Signature, bool) {
	for _, s := range signatures {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return dispatch.Signature{}, false
}
