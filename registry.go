package qmlnet

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// TableReport describes one bound function table.
type TableReport struct {
	Name    string
	Symbols int
}

// Report records how the bootstrap found and bound the native library.
type Report struct {
	Mode       Mode
	Probe      string
	Resolution Resolution
	LoadedPath string
	Aux        AuxPaths
	Tables     []TableReport

	// Fingerprint is the BLAKE2b-256 digest of the loaded file, when
	// requested and available.
	Fingerprint string
}

// Symbols returns the total number of bound native entry points.
func (r Report) Symbols() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Symbols
	}
	return n
}

// Registry holds every bound function table. It is fully populated or not
// returned at all, and read-only once returned.
type Registry struct {
	lib    *Library
	report Report

	callbacks             *CallbacksTable
	netTypeInfo           *NetTypeInfoTable
	netJsValue            *NetJsValueTable
	netMethodInfo         *NetMethodInfoTable
	netPropertyInfo       *NetPropertyInfoTable
	netTypeManager        *NetTypeManagerTable
	qGuiApplication       *QGuiApplicationTable
	qQmlApplicationEngine *QQmlApplicationEngineTable
	netVariant            *NetVariantTable
	netReference          *NetReferenceTable
	netVariantList        *NetVariantListTable
	netTestHelper         *NetTestHelperTable
	netSignalInfo         *NetSignalInfoTable
	qResource             *QResourceTable
	netDelegate           *NetDelegateTable
	qQuickStyle           *QQuickStyleTable
	qt                    *QtTable
	utilities             *UtilitiesTable
	qtWebEngine           *QtWebEngineTable
}

func (r *Registry) Library() *Library { return r.lib }
func (r *Registry) Report() Report { return r.report }
func (r *Registry) Callbacks() *CallbacksTable { return r.callbacks }
func (r *Registry) NetTypeInfo() *NetTypeInfoTable { return r.netTypeInfo }
func (r *Registry) NetJsValue() *NetJsValueTable { return r.netJsValue }
func (r *Registry) NetMethodInfo() *NetMethodInfoTable { return r.netMethodInfo }
func (r *Registry) NetPropertyInfo() *NetPropertyInfoTable { return r.netPropertyInfo }
func (r *Registry) NetTypeManager() *NetTypeManagerTable { return r.netTypeManager }
func (r *Registry) QGuiApplication() *QGuiApplicationTable { return r.qGuiApplication }
func (r *Registry) QQmlApplicationEngine() *QQmlApplicationEngineTable { return r.qQmlApplicationEngine }
func (r *Registry) NetVariant() *NetVariantTable { return r.netVariant }
func (r *Registry) NetReference() *NetReferenceTable { return r.netReference }
func (r *Registry) NetVariantList() *NetVariantListTable { return r.netVariantList }
func (r *Registry) NetTestHelper() *NetTestHelperTable { return r.netTestHelper }
func (r *Registry) NetSignalInfo() *NetSignalInfoTable { return r.netSignalInfo }
func (r *Registry) QResource() *QResourceTable { return r.qResource }
func (r *Registry) NetDelegate() *NetDelegateTable { return r.netDelegate }
func (r *Registry) QQuickStyle() *QQuickStyleTable { return r.qQuickStyle }
func (r *Registry) Qt() *QtTable { return r.qt }
func (r *Registry) Utilities() *UtilitiesTable { return r.utilities }
func (r *Registry) QtWebEngine() *QtWebEngineTable { return r.qtWebEngine }

// tableBinder binds one table into the registry under construction.
type tableBinder func(lib *Library) (TableReport, error)

func bindTo[T any](dst **T) tableBinder {
	return func(lib *Library) (TableReport, error) {
		tbl, err := Bind[T](lib)
		if err != nil {
			return TableReport{}, err
		}
		*dst = tbl
		syms, _ := Symbols[T]()
		return TableReport{Name: reflect.TypeFor[T]().Name(), Symbols: len(syms)}, nil
	}
}

// bindCombined binds the grouped subsystems in a single pass and splits the
// result into their own accessors.
func (r *Registry) bindCombined(lib *Library) (TableReport, error) {
	c, err := Bind[combinedTables](lib)
	if err != nil {
		return TableReport{}, err
	}
	r.qtWebEngine = &c.QtWebEngineTable
	syms, _ := Symbols[combinedTables]()
	return TableReport{Name: "combined", Symbols: len(syms)}, nil
}

// binders lists the tables in binding order. The callbacks table comes right
// after the combined pass so registration can follow binding.
func (r *Registry) binders() []tableBinder {
	return []tableBinder{
		r.bindCombined,
		bindTo(&r.callbacks),
		bindTo(&r.netTypeInfo),
		bindTo(&r.netJsValue),
		bindTo(&r.netMethodInfo),
		bindTo(&r.netPropertyInfo),
		bindTo(&r.netTypeManager),
		bindTo(&r.qGuiApplication),
		bindTo(&r.qQmlApplicationEngine),
		bindTo(&r.netVariant),
		bindTo(&r.netReference),
		bindTo(&r.netVariantList),
		bindTo(&r.netTestHelper),
		bindTo(&r.netSignalInfo),
		bindTo(&r.qResource),
		bindTo(&r.netDelegate),
		bindTo(&r.qQuickStyle),
		bindTo(&r.qt),
		bindTo(&r.utilities),
	}
}

// Init runs the bootstrap: choose the strategy, resolve the library once,
// configure the plugin and QML search paths, load the library, bind every
// function table and register the default callbacks. Any failure aborts
// the whole sequence.
func Init(opts ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	p := o.platform
	if p == nil {
		hp := hostPlatform()
		p = &hp
	}
	return initWith(*p, o)
}

func initWith(p platform, o *options) (*Registry, error) {
	log := Logger()

	host := detectHostExports(o, p)
	strat, err := selectStrategy(p, host, o.searchDirs)
	if err != nil {
		return nil, err
	}
	log.Info("native bootstrap",
		zap.String("os", p.goos),
		zap.Stringer("mode", strat.Mode),
		zap.String("probe", strat.Probe),
		zap.String("library", o.name))

	// Resolve once; discovery and loading share the result.
	res := strat.Resolver.Resolve(o.name)
	rep := Report{Mode: strat.Mode, Probe: strat.Probe, Resolution: res, LoadedPath: res.Path}
	var envVars [][2]string

	if strat.Mode == ModeLibrary {
		if res.OK() {
			rep.Aux = discoverAuxPaths(res.Path, p.fs)
			envVars = rep.Aux.apply(p.env, p.goos)
			log.Info("native library resolved",
				zap.String("path", res.Path),
				zap.String("plugins", rep.Aux.PluginDir),
				zap.String("qml", rep.Aux.QMLDir))
		} else {
			rep.LoadedPath = o.name
			if !isPathName(o.name) {
				rep.LoadedPath = libraryFileNames(p.goos, o.name)[0]
			}
			log.Warn("native library not resolved, deferring to the system loader",
				zap.String("file", rep.LoadedPath),
				zap.Error(res.Err))
		}
	}

	h, err := strat.Loader.LoadLibrary(rep.LoadedPath)
	if err != nil {
		if !res.OK() {
			return nil, fmt.Errorf("%w (%v)", err, res.Err)
		}
		return nil, err
	}

	if o.fingerprint && strat.Mode == ModeLibrary && res.OK() {
		sum, err := fingerprintFile(res.Path)
		if err != nil {
			log.Warn("library fingerprint failed", zap.Error(err))
		}
		rep.Fingerprint = sum
	}

	lib := &Library{Handle: h, Loader: strat.Loader, convert: o.convert}
	reg := &Registry{lib: lib}
	for _, bind := range reg.binders() {
		tr, err := bind(lib)
		if err != nil {
			return nil, err
		}
		rep.Tables = append(rep.Tables, tr)
	}

	handler := o.handler
	if handler == nil {
		handler = NewDefaultCallbacks()
	}
	installer := o.installer
	if installer == nil {
		installer = processCallbacks
	}
	installer.install(reg.callbacks, handler)

	// A process without cgo does not forward os.Setenv to the C
	// environment the native library reads.
	for _, kv := range envVars {
		if !reg.qt.PutEnv(kv[0], kv[1]) {
			log.Warn("native environment not updated", zap.String("key", kv[0]))
		}
	}

	reg.report = rep
	log.Info("native bootstrap complete",
		zap.Int("tables", len(rep.Tables)),
		zap.Int("symbols", rep.Symbols()))
	return reg, nil
}

// lazyRegistry initializes a registry on first use, once, and remembers the
// outcome for every later caller.
type lazyRegistry struct {
	once sync.Once
	init func() (*Registry, error)
	reg  *Registry
	err  error
}

func (l *lazyRegistry) get() (*Registry, error) {
	l.once.Do(func() {
		l.reg, l.err = l.init()
	})
	return l.reg, l.err
}

var processRegistry = &lazyRegistry{init: func() (*Registry, error) { return Init() }}

// Default returns the process-wide registry, bootstrapping it with default
// options on first use. A failed bootstrap is not retried.
func Default() (*Registry, error) {
	return processRegistry.get()
}
