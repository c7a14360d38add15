package qmlnet

import (
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/blake2b"
)

// fixture is a fake system with QmlNet installed under root/lib.
type fixture struct {
	root   string
	lib    string
	p      platform
	env    *mapEnv
	loader *fakeLoader
	conv   *stubConverter
	cbs    *fakeCallbacks
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root:   root,
		lib:    filepath.Join(root, "lib", "libQmlNet.so"),
		env:    newMapEnv(),
		loader: newFakeLoader(registrySymbols(t)...),
		conv:   newStubConverter(),
		cbs:    &fakeCallbacks{},
	}
	writeFile(t, f.lib, []byte("\x7fELF qmlnet"))
	mkdir(t, filepath.Join(root, "lib", "plugins"))
	mkdir(t, filepath.Join(root, "lib", "qml"))
	f.p = platform{goos: "linux", fs: osFS{}, env: f.env, workDir: root, loader: f.loader}
	return f
}

// wire injects the fixture into the bootstrap options.
func (f *fixture) wire() Option {
	return func(o *options) {
		o.platform = &f.p
		o.convert = f.conv.convert
		o.installer = &callbackInstaller{newCallback: f.cbs.newCallback}
	}
}

func (f *fixture) addr(symbol string) uintptr { return f.loader.symbols[symbol] }

func TestInitBindsEveryTable(t *testing.T) {
	f := newFixture(t)
	reg, err := Init(WithSearchDirs(filepath.Join(f.root, "lib")), f.wire())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	accessors := map[string]bool{
		"Callbacks":             reg.Callbacks() != nil,
		"NetTypeInfo":           reg.NetTypeInfo() != nil,
		"NetJsValue":            reg.NetJsValue() != nil,
		"NetMethodInfo":         reg.NetMethodInfo() != nil,
		"NetPropertyInfo":       reg.NetPropertyInfo() != nil,
		"NetTypeManager":        reg.NetTypeManager() != nil,
		"QGuiApplication":       reg.QGuiApplication() != nil,
		"QQmlApplicationEngine": reg.QQmlApplicationEngine() != nil,
		"NetVariant":            reg.NetVariant() != nil,
		"NetReference":          reg.NetReference() != nil,
		"NetVariantList":        reg.NetVariantList() != nil,
		"NetTestHelper":         reg.NetTestHelper() != nil,
		"NetSignalInfo":         reg.NetSignalInfo() != nil,
		"QResource":             reg.QResource() != nil,
		"NetDelegate":           reg.NetDelegate() != nil,
		"QQuickStyle":           reg.QQuickStyle() != nil,
		"Qt":                    reg.Qt() != nil,
		"Utilities":             reg.Utilities() != nil,
		"QtWebEngine":           reg.QtWebEngine() != nil,
	}
	for name, ok := range accessors {
		if !ok {
			t.Errorf("%s table not bound", name)
		}
	}

	rep := reg.Report()
	if rep.Mode != ModeLibrary || rep.Probe != probeLinuxDlopen {
		t.Errorf("unexpected strategy %s/%s", rep.Mode, rep.Probe)
	}
	if rep.LoadedPath != f.lib || rep.Resolution.Path != f.lib {
		t.Errorf("loaded %q resolved %q, want %q", rep.LoadedPath, rep.Resolution.Path, f.lib)
	}
	if diff := cmp.Diff([]string{f.lib}, f.loader.loaded); diff != "" {
		t.Errorf("library must be loaded once (-want +got):\n%s", diff)
	}
	if len(rep.Tables) != 19 || rep.Tables[0].Name != "combined" || rep.Tables[1].Name != "CallbacksTable" {
		t.Errorf("unexpected tables %+v", rep.Tables)
	}
	if rep.Symbols() != len(registrySymbols(t)) {
		t.Errorf("report counts %d symbols, registry binds %d", rep.Symbols(), len(registrySymbols(t)))
	}
	if rep.Fingerprint != "" {
		t.Error("fingerprint computed without being requested")
	}
}

func TestInitConfiguresAuxPaths(t *testing.T) {
	f := newFixture(t)
	reg, err := Init(WithSearchDirs(filepath.Join(f.root, "lib")), f.wire())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	plugins := filepath.Join(f.root, "lib", "plugins")
	qml := filepath.Join(f.root, "lib", "qml")

	want := AuxPaths{LibDir: filepath.Join(f.root, "lib"), PluginDir: plugins, QMLDir: qml}
	if diff := cmp.Diff(want, reg.Report().Aux); diff != "" {
		t.Errorf("aux mismatch (-want +got):\n%s", diff)
	}
	if v, _ := f.env.lookup(envPluginPath); v != plugins {
		t.Errorf("%s = %q", envPluginPath, v)
	}
	if v, _ := f.env.lookup(envQMLPath); v != qml {
		t.Errorf("%s = %q", envQMLPath, v)
	}

	wantPut := [][]any{{envPluginPath, plugins}, {envQMLPath, qml}}
	if diff := cmp.Diff(wantPut, f.conv.argsFor(f.addr("qt_putenv"))); diff != "" {
		t.Errorf("native environment mismatch (-want +got):\n%s", diff)
	}
}

func TestInitRegistersCallbacksFirst(t *testing.T) {
	f := newFixture(t)
	if _, err := Init(WithSearchDirs(filepath.Join(f.root, "lib")), f.wire()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	register := f.addr("type_info_callbacks_registerCallbacks")
	if n := f.conv.count(register); n != 1 {
		t.Fatalf("callbacks registered %d times, want 1", n)
	}
	seq := f.conv.sequence()
	if len(seq) == 0 || seq[0] != register {
		t.Errorf("first native call was %#x, want the callback registration", seq)
	}

	native, ok := f.conv.argsFor(register)[0][0].(*NativeCallbacks)
	if !ok || native == nil {
		t.Fatalf("unexpected registration argument %v", f.conv.argsFor(register))
	}
	if native.IsTypeValid == 0 || native.InvokeDelegate == 0 {
		t.Errorf("callback block not filled: %+v", native)
	}
	if f.cbs.len() != 14 {
		t.Errorf("expected 14 trampolines, got %d", f.cbs.len())
	}
}

func TestInitMissingSymbolAborts(t *testing.T) {
	f := newFixture(t)
	f.loader.without("qt_version")

	reg, err := Init(WithSearchDirs(filepath.Join(f.root, "lib")), f.wire())
	if reg != nil {
		t.Fatal("expected no registry")
	}
	var snf *SymbolNotFoundError
	if !errors.As(err, &snf) || snf.Symbol != "qt_version" || snf.Table != "QtTable" {
		t.Fatalf("unexpected error %v", err)
	}
	if n := f.conv.count(f.addr("type_info_callbacks_registerCallbacks")); n != 0 {
		t.Errorf("callbacks registered %d times after a failed bind", n)
	}
	if f.cbs.len() != 0 {
		t.Error("trampolines created after a failed bind")
	}
}

func TestInitFallsBackToSystemLoader(t *testing.T) {
	f := newFixture(t)
	reg, err := Init(WithLibraryName("QmlNetNotInstalled"), f.wire())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	rep := reg.Report()
	if rep.Resolution.OK() {
		t.Fatalf("expected resolution to fail, got %s", rep.Resolution.Path)
	}
	if rep.LoadedPath != "libQmlNetNotInstalled.so" {
		t.Errorf("loaded %q", rep.LoadedPath)
	}
	if rep.Aux != (AuxPaths{}) || f.env.sets != 0 {
		t.Errorf("aux paths configured without a resolved library: %+v", rep.Aux)
	}
	if n := f.conv.count(f.addr("qt_putenv")); n != 0 {
		t.Errorf("qt_putenv called %d times", n)
	}
}

func TestInitPrefersLoaderProbe(t *testing.T) {
	f := newFixture(t)
	f.p.probe = func(file string) (string, error) {
		if file == "libQmlNet.so" {
			return f.lib, nil
		}
		return "", errors.New("not found")
	}
	reg, err := Init(f.wire())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := reg.Report().LoadedPath; got != f.lib {
		t.Errorf("loaded %q, want %q", got, f.lib)
	}
}

func TestInitLoadFailure(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		f := newFixture(t)
		f.loader.loadErr = errors.New("wrong ELF class")
		_, err := Init(WithSearchDirs(filepath.Join(f.root, "lib")), f.wire())
		var le *LoadError
		if !errors.As(err, &le) || le.Path != f.lib {
			t.Fatalf("expected LoadError for %s, got %v", f.lib, err)
		}
	})
	t.Run("unresolved", func(t *testing.T) {
		f := newFixture(t)
		f.loader.loadErr = errors.New("cannot open shared object file")
		_, err := Init(WithLibraryName("QmlNetNotInstalled"), f.wire())
		var le *LoadError
		if !errors.As(err, &le) {
			t.Fatalf("expected LoadError, got %v", err)
		}
		if !strings.Contains(err.Error(), "could not resolve library") {
			t.Errorf("resolution failure missing from %q", err)
		}
	})
}

func TestInitFingerprint(t *testing.T) {
	f := newFixture(t)
	reg, err := Init(WithSearchDirs(filepath.Join(f.root, "lib")), WithFingerprint(), f.wire())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	sum := blake2b.Sum256([]byte("\x7fELF qmlnet"))
	if got, want := reg.Report().Fingerprint, hex.EncodeToString(sum[:]); got != want {
		t.Errorf("fingerprint %s, want %s", got, want)
	}
}

type countingHandler struct {
	DefaultCallbacks
	valid atomic.Int32
}

func (h *countingHandler) IsTypeValid(string) bool {
	h.valid.Add(1)
	return true
}

func TestInitUsesCustomHandler(t *testing.T) {
	f := newFixture(t)
	h := &countingHandler{DefaultCallbacks: *NewDefaultCallbacks()}
	opts := []Option{WithSearchDirs(filepath.Join(f.root, "lib")), WithCallbacks(h), f.wire()}

	var installer *callbackInstaller
	opts = append(opts, func(o *options) { installer = o.installer })
	if _, err := Init(opts...); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if installer.current() != CallbackHandler(h) {
		t.Fatalf("installed handler %T", installer.current())
	}
}

func TestLazyRegistryInitializesOnce(t *testing.T) {
	var calls atomic.Int32
	want := &Registry{}
	l := &lazyRegistry{init: func() (*Registry, error) {
		calls.Add(1)
		return want, nil
	}}

	var wg sync.WaitGroup
	got := make([]*Registry, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = l.get()
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("bootstrap ran %d times", calls.Load())
	}
	for i, r := range got {
		if r != want {
			t.Errorf("caller %d got a different registry", i)
		}
	}
}

func TestLazyRegistryRemembersFailure(t *testing.T) {
	var calls int
	boom := errors.New("no library")
	l := &lazyRegistry{init: func() (*Registry, error) {
		calls++
		return nil, boom
	}}
	for range 3 {
		if reg, err := l.get(); reg != nil || !errors.Is(err, boom) {
			t.Fatalf("got %v, %v", reg, err)
		}
	}
	if calls != 1 {
		t.Errorf("failed bootstrap retried %d times", calls-1)
	}
}

func TestInitRelativeSearchDir(t *testing.T) {
	f := newFixture(t)
	t.Chdir(f.root)

	reg, err := Init(WithSearchDirs("lib"), f.wire())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	rep := reg.Report()
	if rep.LoadedPath != f.lib {
		t.Errorf("loaded %q, want %q", rep.LoadedPath, f.lib)
	}
	if diff := cmp.Diff([]string{f.lib}, f.loader.loaded); diff != "" {
		t.Errorf("loader got a relative path (-want +got):\n%s", diff)
	}
	plugins := filepath.Join(f.root, "lib", "plugins")
	if rep.Aux.PluginDir != plugins {
		t.Errorf("plugins %q, want %q", rep.Aux.PluginDir, plugins)
	}
	if v, _ := f.env.lookup(envPluginPath); v != plugins {
		t.Errorf("%s = %q, want %q", envPluginPath, v, plugins)
	}
}

func TestInitRelativeLibraryPath(t *testing.T) {
	f := newFixture(t)
	t.Chdir(filepath.Join(f.root, "lib"))

	reg, err := Init(WithLibraryName("./libQmlNet.so"), f.wire())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	rep := reg.Report()
	if rep.LoadedPath != f.lib {
		t.Errorf("loaded %q, want %q", rep.LoadedPath, f.lib)
	}
	if rep.Aux.QMLDir != filepath.Join(f.root, "lib", "qml") {
		t.Errorf("qml dir not discovered: %+v", rep.Aux)
	}
}

func TestInitMirrorsWindowsPath(t *testing.T) {
	f := newFixture(t)
	libDir := filepath.Join(f.root, "lib")
	writeFile(t, filepath.Join(libDir, "QmlNet.dll"), []byte("MZ qmlnet"))
	f.p.goos = "windows"
	f.env.vars[envPath] = `C:\Windows`

	if _, err := Init(WithSearchDirs(libDir), f.wire()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	path := `C:\Windows;` + libDir
	if v, _ := f.env.lookup(envPath); v != path {
		t.Errorf("PATH = %q, want %q", v, path)
	}
	want := [][]any{
		{envPluginPath, filepath.Join(libDir, "plugins")},
		{envQMLPath, filepath.Join(libDir, "qml")},
		{envPath, path},
	}
	if diff := cmp.Diff(want, f.conv.argsFor(f.addr("qt_putenv"))); diff != "" {
		t.Errorf("native environment mismatch (-want +got):\n%s", diff)
	}
}
