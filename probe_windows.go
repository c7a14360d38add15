//go:build windows

package qmlnet

import (
	"golang.org/x/sys/windows"
)

// nativeProbe loads fileName with the standard DLL search order and asks
// Windows which module file it mapped.
func nativeProbe(fileName string) (string, error) {
	h, err := windows.LoadLibrary(fileName)
	if err != nil {
		return "", err
	}
	buf := make([]uint16, windows.MAX_LONG_PATH)
	n, err := windows.GetModuleFileName(h, &buf[0], uint32(len(buf)))
	if err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf[:n]), nil
}
