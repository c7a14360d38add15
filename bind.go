package qmlnet

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/ebitengine/purego"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// symbolTag is the struct tag carrying the native export name of a table
// member.
const symbolTag = "sym"

// maxNativeArgs is the largest argument count the call converter accepts.
const maxNativeArgs = 15

// Library is an opened native module together with the loader that opened
// it. Function tables are bound against a Library.
type Library struct {
	Handle Handle
	Loader Loader

	// convert turns a native address into a typed Go function stored in
	// fptr. It defaults to purego.RegisterFunc.
	convert func(fptr any, addr uintptr)
}

// NewLibrary wraps an already opened handle.
func NewLibrary(h Handle, l Loader) *Library {
	return &Library{Handle: h, Loader: l}
}

func (l *Library) register(fptr any, addr uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	convert := l.convert
	if convert == nil {
		convert = purego.RegisterFunc
	}
	convert(fptr, addr)
	return nil
}

type member struct {
	index  []int
	field  string
	symbol string
}

type tableDesc struct {
	name    string
	members []member
}

// descriptors caches one *tableDesc per table type.
var descriptors sync.Map

// describe compiles the member list of a table type once.
func describe(t reflect.Type) (*tableDesc, error) {
	if d, ok := descriptors.Load(t); ok {
		return d.(*tableDesc), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, &BindingError{Table: t.String(), Reason: "function table must be a struct"}
	}
	d := &tableDesc{name: t.Name()}
	if err := d.walk(t, nil, ""); err != nil {
		return nil, err
	}
	if len(d.members) == 0 {
		return nil, &BindingError{Table: d.name, Reason: "function table declares no members"}
	}
	actual, _ := descriptors.LoadOrStore(t, d)
	return actual.(*tableDesc), nil
}

func (d *tableDesc) walk(t reflect.Type, index []int, prefix string) error {
	for i := range t.NumField() {
		f := t.Field(i)
		idx := append(append([]int(nil), index...), i)
		name := prefix + f.Name

		// Embedded tables are flattened into the combined table.
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if err := d.walk(f.Type, idx, name+"."); err != nil {
				return err
			}
			continue
		}
		if !f.IsExported() {
			return &BindingError{Table: d.name, Member: name, Reason: "member is not exported"}
		}
		sym, ok := f.Tag.Lookup(symbolTag)
		if !ok || sym == "" {
			return &BindingError{Table: d.name, Member: name, Reason: "member has no sym tag"}
		}
		if err := validateSignature(f.Type); err != nil {
			return &BindingError{Table: d.name, Member: name, Reason: err.Error()}
		}
		d.members = append(d.members, member{index: idx, field: name, symbol: sym})
	}
	return nil
}

// validateSignature checks that t is a function the native call converter
// can build: fixed arity, at most one result, scalar, pointer, string or
// bool values only.
func validateSignature(t reflect.Type) error {
	if t.Kind() != reflect.Func {
		return errors.New("member is not a function")
	}
	if t.IsVariadic() {
		return errors.New("variadic native functions are not supported")
	}
	if t.NumIn() > maxNativeArgs {
		return fmt.Errorf("native functions take at most %d arguments", maxNativeArgs)
	}
	if t.NumOut() > 1 {
		return errors.New("native functions return at most one value")
	}
	for i := range t.NumIn() {
		if !nativeKind(t.In(i).Kind()) {
			return fmt.Errorf("argument %d has unsupported type %s", i, t.In(i))
		}
	}
	if t.NumOut() == 1 && !nativeKind(t.Out(0).Kind()) {
		return fmt.Errorf("result has unsupported type %s", t.Out(0))
	}
	return nil
}

func nativeKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Pointer, reflect.UnsafePointer, reflect.String:
		return true
	}
	return false
}

// Bind builds a function table of type T from lib. Every member's symbol is
// resolved before any member is assigned, so a missing export yields an
// error and no table; all missing symbols are reported together.
func Bind[T any](lib *Library) (*T, error) {
	d, err := describe(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	addrs := make([]uintptr, len(d.members))
	var errs error
	for i, m := range d.members {
		addr, err := lib.Loader.LoadSymbol(lib.Handle, m.symbol)
		if err != nil {
			errs = multierr.Append(errs, symbolError(d.name, m.symbol, err))
			continue
		}
		addrs[i] = addr
	}
	if errs != nil {
		return nil, errs
	}

	tbl := new(T)
	v := reflect.ValueOf(tbl).Elem()
	for i, m := range d.members {
		fv := v.FieldByIndex(m.index)
		if err := lib.register(fv.Addr().Interface(), addrs[i]); err != nil {
			return nil, &BindingError{Table: d.name, Member: m.field, Reason: err.Error()}
		}
	}

	Logger().Debug("function table bound",
		zap.String("table", d.name),
		zap.Int("symbols", len(d.members)))
	return tbl, nil
}

// Symbols lists the native export names a table type requires, in
// declaration order.
func Symbols[T any]() ([]string, error) {
	return symbolsOf(reflect.TypeFor[T]())
}

func symbolsOf(t reflect.Type) ([]string, error) {
	d, err := describe(t)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(d.members))
	for i, m := range d.members {
		out[i] = m.symbol
	}
	return out, nil
}

func symbolError(table, symbol string, err error) error {
	var snf *SymbolNotFoundError
	if errors.As(err, &snf) {
		return &SymbolNotFoundError{Table: table, Symbol: symbol, Err: snf.Err}
	}
	return &SymbolNotFoundError{Table: table, Symbol: symbol, Err: err}
}
