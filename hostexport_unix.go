//go:build darwin || linux

package qmlnet

import "github.com/ebitengine/purego"

// processExports looks symbols up in the global scope of the running
// process, executable included.
func processExports() HostExports {
	return HostExportsFunc(func(name string) (uintptr, error) {
		return purego.Dlsym(purego.RTLD_DEFAULT, name)
	})
}
