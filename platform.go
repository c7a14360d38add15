package qmlnet

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// statFS is the only filesystem access the bootstrap needs.
type statFS interface {
	Stat(name string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// environ is the process environment as seen by the bootstrap.
type environ interface {
	Getenv(key string) string
	Setenv(key, value string) error
}

type processEnv struct{}

func (processEnv) Getenv(key string) string { return os.Getenv(key) }

func (processEnv) Setenv(key, value string) error { return os.Setenv(key, value) }

// loaderProbe asks the operating system loader which file it picks for a
// platform library file name.
type loaderProbe func(fileName string) (string, error)

// platform carries every operating system dependency of the bootstrap so
// the selection and discovery logic can run against a fake system.
type platform struct {
	goos    string
	fs      statFS
	env     environ
	exeDir  string
	workDir string
	probe   loaderProbe
	loader  Loader
	process HostExports
}

// hostPlatform describes the running process.
func hostPlatform() platform {
	p := platform{
		goos:    runtime.GOOS,
		fs:      osFS{},
		env:     processEnv{},
		probe:   nativeProbe,
		loader:  nativeLoader(),
		process: processExports(),
	}
	if exe, err := os.Executable(); err == nil {
		p.exeDir = filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		p.workDir = wd
	}
	return p
}

func listSeparator(goos string) string {
	if goos == "windows" {
		return ";"
	}
	return ":"
}

func isDir(fsys statFS, path string) bool {
	fi, err := fsys.Stat(path)
	return err == nil && fi.IsDir()
}

func isFile(fsys statFS, path string) bool {
	fi, err := fsys.Stat(path)
	return err == nil && !fi.IsDir()
}
