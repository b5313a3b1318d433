//go:build !windows

package provider

func platformRegister(p Paths) (int32, error) {
	return 0, ErrUnsupportedPlatform
}
