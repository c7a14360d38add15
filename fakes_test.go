package qmlnet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"testing"
	"unsafe"
)

// mapEnv is an in-memory environ.
type mapEnv struct {
	mu   sync.Mutex
	vars map[string]string
	sets int
}

func newMapEnv(kv ...string) *mapEnv {
	e := &mapEnv{vars: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		e.vars[kv[i]] = kv[i+1]
	}
	return e
}

func (e *mapEnv) Getenv(key string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vars[key]
}

func (e *mapEnv) Setenv(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
	e.sets++
	return nil
}

func (e *mapEnv) lookup(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.vars[key]
	return v, ok
}

// countingFS records every Stat call.
type countingFS struct {
	mu    sync.Mutex
	calls []string
}

func (c *countingFS) Stat(name string) (fs.FileInfo, error) {
	c.mu.Lock()
	c.calls = append(c.calls, name)
	c.mu.Unlock()
	return os.Stat(name)
}

func (c *countingFS) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// fakeLoader serves a fixed export table with distinct fake addresses.
type fakeLoader struct {
	mu      sync.Mutex
	symbols map[string]uintptr
	loadErr error
	loaded  []string
}

func newFakeLoader(symbols ...string) *fakeLoader {
	l := &fakeLoader{symbols: make(map[string]uintptr)}
	for i, s := range symbols {
		l.symbols[s] = uintptr(0x1000 + i*0x10)
	}
	return l
}

func (l *fakeLoader) LoadLibrary(path string) (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = append(l.loaded, path)
	if l.loadErr != nil {
		return 0, &LoadError{Path: path, Err: l.loadErr}
	}
	return Handle(0xbeef), nil
}

func (l *fakeLoader) LoadSymbol(_ Handle, name string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if addr, ok := l.symbols[name]; ok {
		return addr, nil
	}
	return 0, &SymbolNotFoundError{Symbol: name, Err: errors.New("undefined symbol")}
}

func (l *fakeLoader) LookupExport(name string) (uintptr, error) {
	return l.LoadSymbol(0, name)
}

func (l *fakeLoader) without(symbol string) *fakeLoader {
	delete(l.symbols, symbol)
	return l
}

// stubConverter replaces native calls with Go stubs that count invocations
// per address and return zero values.
type stubConverter struct {
	mu    sync.Mutex
	calls map[uintptr]int
	args  map[uintptr][][]any
	order []uintptr
}

func newStubConverter() *stubConverter {
	return &stubConverter{calls: make(map[uintptr]int), args: make(map[uintptr][][]any)}
}

func (c *stubConverter) convert(fptr any, addr uintptr) {
	fn := reflect.ValueOf(fptr).Elem()
	ft := fn.Type()
	fn.Set(reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		c.mu.Lock()
		c.calls[addr]++
		c.order = append(c.order, addr)
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}
		c.args[addr] = append(c.args[addr], args)
		c.mu.Unlock()

		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}
		// Report success from bool returning calls such as qt_putenv.
		if len(out) == 1 && ft.Out(0).Kind() == reflect.Bool {
			out[0] = reflect.ValueOf(true)
		}
		return out
	}))
}

func (c *stubConverter) count(addr uintptr) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[addr]
}

// sequence returns the called addresses in call order.
func (c *stubConverter) sequence() []uintptr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uintptr(nil), c.order...)
}

func (c *stubConverter) argsFor(addr uintptr) [][]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.args[addr]
}

// fakeCallbacks hands out fake function pointers and keeps the Go functions
// so tests can play the native side.
type fakeCallbacks struct {
	mu  sync.Mutex
	fns map[uintptr]any
}

func (f *fakeCallbacks) newCallback(fn any) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fns == nil {
		f.fns = make(map[uintptr]any)
	}
	addr := uintptr(0x9000 + len(f.fns))
	f.fns[addr] = fn
	return addr
}

func (f *fakeCallbacks) fn(addr uintptr) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fns[addr]
}

func (f *fakeCallbacks) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fns)
}

// registrySymbols lists every export the registry binds, sorted.
func registrySymbols(t *testing.T) []string {
	t.Helper()
	seen := map[string]bool{}
	rt := reflect.TypeFor[Registry]()
	for i := range rt.NumField() {
		f := rt.Field(i)
		if f.Type.Kind() != reflect.Pointer || f.Type.Elem().Kind() != reflect.Struct {
			continue
		}
		if f.Type.Elem() == reflect.TypeFor[Library]() {
			continue
		}
		syms, err := symbolsOf(f.Type.Elem())
		if err != nil {
			t.Fatalf("symbols of %s: %v", f.Type.Elem(), err)
		}
		for _, s := range syms {
			seen[s] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// cString returns a NUL terminated copy of s and a pointer to its first
// byte, standing in for strings the native side passes to callbacks. Keep
// the slice alive while the pointer is used.
func cString(s string) ([]byte, unsafe.Pointer) {
	b := append([]byte(s), 0)
	return b, unsafe.Pointer(&b[0])
}

// writeFile creates path and its parent directories.
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}
