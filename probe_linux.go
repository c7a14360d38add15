//go:build linux

package qmlnet

import (
	"fmt"
	"os"

	"github.com/ebitengine/purego"
)

// nativeProbe lets the dynamic loader search for fileName and reads the
// resulting mapping back from /proc/self/maps.
func nativeProbe(fileName string) (string, error) {
	if _, err := purego.Dlopen(fileName, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
		return "", err
	}
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if path, ok := findMappedLibrary(f, fileName); ok {
		return path, nil
	}
	return "", fmt.Errorf("qmlnet: %s loaded but not mapped from a file", fileName)
}
