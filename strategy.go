package qmlnet

// Mode tells where native symbols come from.
type Mode int

const (
	// ModeLibrary loads an external shared library.
	ModeLibrary Mode = iota

	// ModeHostExports reads the running executable's own exports.
	ModeHostExports
)

func (m Mode) String() string {
	switch m {
	case ModeLibrary:
		return "library"
	case ModeHostExports:
		return "host-exports"
	}
	return "unknown"
}

// Strategy is the resolver and loader pair chosen once at bootstrap.
type Strategy struct {
	Mode     Mode
	Resolver PathResolver
	Loader   Loader

	// Probe names the loader probe wrapping the resolver; empty in
	// host-export mode.
	Probe string
}

// selectStrategy picks the resolver and loader for p. The choice depends
// only on the operating system and on whether host exports are present.
func selectStrategy(p platform, host HostExports, searchDirs []string) (Strategy, error) {
	kind := probeKindFor(p.goos)
	if kind == "" {
		return Strategy{}, &PlatformUnsupportedError{GOOS: p.goos}
	}

	if host != nil {
		a := &hostAdapter{exports: host}
		return Strategy{Mode: ModeHostExports, Resolver: a, Loader: a}, nil
	}

	if p.loader == nil {
		return Strategy{}, &PlatformUnsupportedError{GOOS: p.goos}
	}
	return Strategy{
		Mode: ModeLibrary,
		Resolver: &probingResolver{
			kind:  kind,
			goos:  p.goos,
			probe: p.probe,
			next:  newSearchResolver(p, searchDirs),
		},
		Loader: p.loader,
		Probe:  kind,
	}, nil
}
