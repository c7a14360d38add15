//go:build darwin

package qmlnet

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	dyldOnce       sync.Once
	dyldErr        error
	dyldImageCount func() uint32
	dyldImageName  func(index uint32) string
)

func loadDyld() error {
	dyldOnce.Do(func() {
		lib, err := purego.Dlopen("/usr/lib/libSystem.B.dylib", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			dyldErr = err
			return
		}
		purego.RegisterLibFunc(&dyldImageCount, lib, "_dyld_image_count")
		purego.RegisterLibFunc(&dyldImageName, lib, "_dyld_get_image_name")
	})
	return dyldErr
}

// nativeProbe lets dyld search for fileName and looks the loaded image up in
// the dyld image list.
func nativeProbe(fileName string) (string, error) {
	if _, err := purego.Dlopen(fileName, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
		return "", err
	}
	if err := loadDyld(); err != nil {
		return "", err
	}
	n := dyldImageCount()
	images := make([]string, 0, n)
	for i := range n {
		images = append(images, dyldImageName(i))
	}
	if path, ok := findLoadedImage(images, fileName); ok {
		return path, nil
	}
	return "", fmt.Errorf("qmlnet: %s loaded but not in the dyld image list", fileName)
}
