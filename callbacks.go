package qmlnet

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
)

// NativeCallbacks is the callback block handed to the native library. Each
// field is a C function pointer; the layout mirrors the native struct.
type NativeCallbacks struct {
	IsTypeValid                uintptr
	CreateLazyTypeInfo         uintptr
	LoadTypeInfo               uintptr
	CallComponentCompleted     uintptr
	CallObjectDestroyed        uintptr
	ReleaseNetReference        uintptr
	ReleaseNetDelegateGCHandle uintptr
	InstantiateType            uintptr
	ReadProperty               uintptr
	WriteProperty              uintptr
	InvokeMethod               uintptr
	GCCollect                  uintptr
	RaiseNetSignals            uintptr
	InvokeDelegate             uintptr
}

// CallbackHandler is the host logic the native library calls back into.
type CallbackHandler interface {
	IsTypeValid(typeName string) bool
	CreateLazyTypeInfo(typeInfo uintptr)
	LoadTypeInfo(typeInfo uintptr)
	CallComponentCompleted(target uintptr)
	CallObjectDestroyed(target uintptr)
	ReleaseNetReference(objectID uint64)
	ReleaseNetDelegateGCHandle(handle uint64)
	InstantiateType(typeInfo uintptr, aotTypeID int32) uint64
	ReadProperty(property, target, indexParameter, result uintptr)
	WriteProperty(property, target, indexParameter, value uintptr)
	InvokeMethod(method, target, parameters, result uintptr)
	GCCollect(generation int32)
	RaiseNetSignals(target uintptr, signalName string, parameters uintptr) bool
	InvokeDelegate(delegate, parameters uintptr)
}

// DefaultCallbacks answers native callbacks without any registered host
// types. Objects handed to native code are tracked in Objects so release
// callbacks can drop them.
type DefaultCallbacks struct {
	Objects *ObjectTable
}

// NewDefaultCallbacks returns a DefaultCallbacks with an empty object table.
func NewDefaultCallbacks() *DefaultCallbacks {
	return &DefaultCallbacks{Objects: NewObjectTable()}
}

func (*DefaultCallbacks) IsTypeValid(string) bool { return false }

func (*DefaultCallbacks) CreateLazyTypeInfo(uintptr) {}

func (*DefaultCallbacks) LoadTypeInfo(uintptr) {}

func (*DefaultCallbacks) CallComponentCompleted(uintptr) {}

func (*DefaultCallbacks) CallObjectDestroyed(uintptr) {}

func (c *DefaultCallbacks) ReleaseNetReference(objectID uint64) {
	c.Objects.Release(objectID)
}

func (c *DefaultCallbacks) ReleaseNetDelegateGCHandle(handle uint64) {
	c.Objects.Release(handle)
}

func (*DefaultCallbacks) InstantiateType(uintptr, int32) uint64 { return 0 }

func (*DefaultCallbacks) ReadProperty(_, _, _, _ uintptr) {}

func (*DefaultCallbacks) WriteProperty(_, _, _, _ uintptr) {}

func (*DefaultCallbacks) InvokeMethod(_, _, _, _ uintptr) {}

func (*DefaultCallbacks) GCCollect(int32) { runtime.GC() }

func (*DefaultCallbacks) RaiseNetSignals(uintptr, string, uintptr) bool { return false }

func (*DefaultCallbacks) InvokeDelegate(_, _ uintptr) {}

// ObjectTable keeps host objects alive while native code holds their ids.
type ObjectTable struct {
	mu      sync.Mutex
	objects map[uint64]any
	next    uint64
}

// NewObjectTable returns an empty table. Ids start at 1; 0 means no object.
func NewObjectTable() *ObjectTable {
	return &ObjectTable{objects: make(map[uint64]any)}
}

// Add stores obj and returns its id.
func (t *ObjectTable) Add(obj any) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.objects[t.next] = obj
	return t.next
}

// Get returns the object stored under id.
func (t *ObjectTable) Get(id uint64) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj, ok := t.objects[id]
	return obj, ok
}

// Release forgets id.
func (t *ObjectTable) Release(id uint64) {
	t.mu.Lock()
	delete(t.objects, id)
	t.mu.Unlock()
}

// Len reports how many objects are held.
func (t *ObjectTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objects)
}

type handlerBox struct {
	h CallbackHandler
}

// callbackInstaller owns the C trampolines. Trampolines are created once and
// dispatch to whichever handler was installed last; callback slots are a
// limited process resource.
type callbackInstaller struct {
	newCallback func(fn any) uintptr

	once    sync.Once
	native  NativeCallbacks
	handler atomic.Pointer[handlerBox]
}

// processCallbacks is the installer used by the process, backed by purego.
var processCallbacks = &callbackInstaller{newCallback: purego.NewCallback}

func (ci *callbackInstaller) current() CallbackHandler {
	if b := ci.handler.Load(); b != nil {
		return b.h
	}
	return nil
}

func (ci *callbackInstaller) trampolines() *NativeCallbacks {
	ci.once.Do(func() {
		nc := ci.newCallback
		ci.native = NativeCallbacks{
			IsTypeValid: nc(func(typeName uintptr) uintptr {
				return boolToInt(ci.current().IsTypeValid(goString(typeName)))
			}),
			CreateLazyTypeInfo: nc(func(typeInfo uintptr) uintptr {
				ci.current().CreateLazyTypeInfo(typeInfo)
				return 0
			}),
			LoadTypeInfo: nc(func(typeInfo uintptr) uintptr {
				ci.current().LoadTypeInfo(typeInfo)
				return 0
			}),
			CallComponentCompleted: nc(func(target uintptr) uintptr {
				ci.current().CallComponentCompleted(target)
				return 0
			}),
			CallObjectDestroyed: nc(func(target uintptr) uintptr {
				ci.current().CallObjectDestroyed(target)
				return 0
			}),
			ReleaseNetReference: nc(func(objectID uintptr) uintptr {
				ci.current().ReleaseNetReference(uint64(objectID))
				return 0
			}),
			ReleaseNetDelegateGCHandle: nc(func(handle uintptr) uintptr {
				ci.current().ReleaseNetDelegateGCHandle(uint64(handle))
				return 0
			}),
			InstantiateType: nc(func(typeInfo, aotTypeID uintptr) uintptr {
				return uintptr(ci.current().InstantiateType(typeInfo, int32(aotTypeID)))
			}),
			ReadProperty: nc(func(property, target, indexParameter, result uintptr) uintptr {
				ci.current().ReadProperty(property, target, indexParameter, result)
				return 0
			}),
			WriteProperty: nc(func(property, target, indexParameter, value uintptr) uintptr {
				ci.current().WriteProperty(property, target, indexParameter, value)
				return 0
			}),
			InvokeMethod: nc(func(method, target, parameters, result uintptr) uintptr {
				ci.current().InvokeMethod(method, target, parameters, result)
				return 0
			}),
			GCCollect: nc(func(generation uintptr) uintptr {
				ci.current().GCCollect(int32(generation))
				return 0
			}),
			RaiseNetSignals: nc(func(target, signalName, parameters uintptr) uintptr {
				return boolToInt(ci.current().RaiseNetSignals(target, goString(signalName), parameters))
			}),
			InvokeDelegate: nc(func(delegate, parameters uintptr) uintptr {
				ci.current().InvokeDelegate(delegate, parameters)
				return 0
			}),
		}
	})
	return &ci.native
}

// install hands the callback block to the native library. It must run after
// the callbacks table is bound and before any other native call.
func (ci *callbackInstaller) install(tbl *CallbacksTable, h CallbackHandler) {
	ci.handler.Store(&handlerBox{h: h})
	native := ci.trampolines()
	tbl.RegisterCallbacks(native)
	Logger().Debug("default callbacks registered", zap.String("handler", fmt.Sprintf("%T", h)))
}
