//go:build !darwin && !linux && !windows

package qmlnet

func nativeLoader() Loader { return nil }
