package qmlnet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPlatformUnsupported is matched by every PlatformUnsupportedError.
var ErrPlatformUnsupported = errors.New("qmlnet: platform not supported")

// ResolutionError reports that a logical library name could not be mapped
// to a file. It is not fatal on its own: the loader may still find the
// library through the operating system search rules.
type ResolutionError struct {
	Name     string
	Searched []string
	Err      error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "qmlnet: could not resolve library %q", e.Name)
	if len(e.Searched) > 0 {
		fmt.Fprintf(&b, " (searched %s)", strings.Join(e.Searched, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// LoadError reports that the native library could not be opened.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("qmlnet: failed to load native library %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SymbolNotFoundError reports a declared table member without a matching
// native export.
type SymbolNotFoundError struct {
	Table  string
	Symbol string
	Err    error
}

func (e *SymbolNotFoundError) Error() string {
	msg := fmt.Sprintf("qmlnet: symbol %s not found", e.Symbol)
	if e.Table != "" {
		msg = fmt.Sprintf("qmlnet: %s: symbol %s not found", e.Table, e.Symbol)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SymbolNotFoundError) Unwrap() error { return e.Err }

// BindingError reports a function table whose declaration cannot be bound,
// such as a member without a symbol tag or with a signature the converter
// rejects.
type BindingError struct {
	Table  string
	Member string
	Reason string
}

func (e *BindingError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("qmlnet: cannot bind %s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("qmlnet: cannot bind %s.%s: %s", e.Table, e.Member, e.Reason)
}

// PlatformUnsupportedError reports an operating system with no loader.
type PlatformUnsupportedError struct {
	GOOS string
}

func (e *PlatformUnsupportedError) Error() string {
	return fmt.Sprintf("qmlnet: platform %q not supported", e.GOOS)
}

func (e *PlatformUnsupportedError) Is(target error) bool {
	return target == ErrPlatformUnsupported
}
