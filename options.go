package qmlnet

// DefaultLibraryName is the logical name of the native library.
const DefaultLibraryName = "QmlNet"

type options struct {
	name           string
	searchDirs     []string
	hostExports    HostExports
	processExports bool
	handler        CallbackHandler
	fingerprint    bool

	platform  *platform
	convert   func(fptr any, addr uintptr)
	installer *callbackInstaller
}

// Option configures the bootstrap.
type Option func(*options)

func defaultOptions() *options {
	return &options{name: DefaultLibraryName}
}

// WithLibraryName overrides the logical library name. A name containing a
// path separator is used as a file path.
func WithLibraryName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSearchDirs adds directories searched before the conventional
// locations when the operating system loader cannot find the library.
func WithSearchDirs(dirs ...string) Option {
	return func(o *options) { o.searchDirs = append(o.searchDirs, dirs...) }
}

// WithHostExports switches to host-export mode: symbols are looked up
// through exports instead of an external library.
func WithHostExports(exports HostExports) Option {
	return func(o *options) { o.hostExports = exports }
}

// WithProcessExports enables host-export mode when the running executable
// exports the native entry points itself.
func WithProcessExports() Option {
	return func(o *options) { o.processExports = true }
}

// WithCallbacks replaces the default callback handler.
func WithCallbacks(h CallbackHandler) Option {
	return func(o *options) { o.handler = h }
}

// WithFingerprint records a BLAKE2b digest of the loaded library file in
// the report.
func WithFingerprint() Option {
	return func(o *options) { o.fingerprint = true }
}
