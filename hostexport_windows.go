//go:build windows

package qmlnet

import (
	"sync"

	"golang.org/x/sys/windows"
)

// executableModule returns the handle of the executable module. The
// reference count is left unchanged; the module lives as long as the
// process.
var executableModule = sync.OnceValues(func() (windows.Handle, error) {
	var exe windows.Handle
	err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, nil, &exe)
	return exe, err
})

// processExports looks symbols up in the export table of the executable
// module.
func processExports() HostExports {
	return HostExportsFunc(func(name string) (uintptr, error) {
		exe, err := executableModule()
		if err != nil {
			return 0, err
		}
		return windows.GetProcAddress(exe, name)
	})
}
