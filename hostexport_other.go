//go:build !darwin && !linux && !windows

package qmlnet

func processExports() HostExports { return nil }
