//go:build windows

package qmlnet

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

type winLoader struct{}

func nativeLoader() Loader { return winLoader{} }

func (winLoader) LoadLibrary(path string) (Handle, error) {
	var flags uintptr
	// Let dependencies next to an absolute path win over the default search.
	if filepath.IsAbs(path) {
		flags = windows.LOAD_WITH_ALTERED_SEARCH_PATH
	}
	h, err := windows.LoadLibraryEx(path, 0, flags)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	return Handle(h), nil
}

func (winLoader) LoadSymbol(h Handle, name string) (uintptr, error) {
	ptr, err := windows.GetProcAddress(windows.Handle(h), name)
	if err != nil {
		return 0, &SymbolNotFoundError{Symbol: name, Err: err}
	}
	return ptr, nil
}
