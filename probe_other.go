//go:build !darwin && !linux && !windows

package qmlnet

import "runtime"

func nativeProbe(string) (string, error) {
	return "", &PlatformUnsupportedError{GOOS: runtime.GOOS}
}
