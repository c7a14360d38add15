package qmlnet

// Handle identifies a loaded native module. Handles are never released;
// process exit reclaims them.
type Handle uintptr

// Loader opens native modules and looks up their exports.
type Loader interface {
	LoadLibrary(path string) (Handle, error)
	LoadSymbol(h Handle, name string) (uintptr, error)
}
