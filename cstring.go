package qmlnet

import "unsafe"

func boolToInt(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

// goString copies a NUL terminated C string.
func goString(c uintptr) string {
	// Take the address and dereference it so go vet does not flag the
	// uintptr to unsafe.Pointer conversion.
	ptr := *(*unsafe.Pointer)(unsafe.Pointer(&c))
	if ptr == nil {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Add(ptr, uintptr(length))) != 0 {
		length++
	}
	return string(unsafe.Slice((*byte)(ptr), length))
}
