package qmlnet

import (
	"fmt"

	"go.uber.org/zap"
)

// hostIndicatorSymbol is exported by executables that link the native
// library statically.
const hostIndicatorSymbol = "qml_net_host_exports"

// hostHandle is the pseudo handle handed out in host-export mode.
const hostHandle Handle = 1

// HostExports is the capability of a hosting process to hand out its own
// exported symbols.
type HostExports interface {
	LookupExport(name string) (uintptr, error)
}

// HostExportsFunc adapts a function to HostExports.
type HostExportsFunc func(name string) (uintptr, error)

// LookupExport calls f(name).
func (f HostExportsFunc) LookupExport(name string) (uintptr, error) { return f(name) }

// hostAdapter stands in for both the resolver and the loader when the
// symbols live in the running executable. It never touches the filesystem.
type hostAdapter struct {
	exports HostExports
}

func (a *hostAdapter) Resolve(name string) Resolution {
	return Resolution{Name: name}
}

func (a *hostAdapter) LoadLibrary(string) (Handle, error) {
	return hostHandle, nil
}

func (a *hostAdapter) LoadSymbol(_ Handle, name string) (uintptr, error) {
	ptr, err := a.exports.LookupExport(name)
	if err != nil {
		return 0, &SymbolNotFoundError{Symbol: name, Err: err}
	}
	if ptr == 0 {
		return 0, &SymbolNotFoundError{Symbol: name, Err: fmt.Errorf("host export %s is nil", name)}
	}
	return ptr, nil
}

// detectHostExports decides once whether the bootstrap runs in host-export
// mode. An explicit capability wins; otherwise the process export table is
// used when requested and it carries the indicator symbol.
func detectHostExports(o *options, p platform) HostExports {
	if o.hostExports != nil {
		return o.hostExports
	}
	if !o.processExports || p.process == nil {
		return nil
	}
	if ptr, err := p.process.LookupExport(hostIndicatorSymbol); err != nil || ptr == 0 {
		Logger().Debug("process does not export native symbols",
			zap.String("indicator", hostIndicatorSymbol),
			zap.Error(err))
		return nil
	}
	return p.process
}
