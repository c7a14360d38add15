//go:build darwin || linux

package qmlnet

import (
	"errors"
	"fmt"

	"github.com/ebitengine/purego"
)

type dlLoader struct{}

func nativeLoader() Loader { return dlLoader{} }

func (dlLoader) LoadLibrary(path string) (Handle, error) {
	h, err := purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	if h == 0 {
		return 0, &LoadError{Path: path, Err: errors.New("native library handle is nil")}
	}
	return Handle(h), nil
}

func (dlLoader) LoadSymbol(h Handle, name string) (uintptr, error) {
	ptr, err := purego.Dlsym(uintptr(h), name)
	if err != nil {
		return 0, &SymbolNotFoundError{Symbol: name, Err: err}
	}
	if ptr == 0 {
		return 0, &SymbolNotFoundError{Symbol: name, Err: fmt.Errorf("%s resolved to a nil address", name)}
	}
	return ptr, nil
}
