package qmlnet

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Environment variables read by the native library when it starts.
const (
	envPluginPath = "QT_PLUGIN_PATH"
	envQMLPath    = "QML2_IMPORT_PATH"
	envPath       = "PATH"
)

// Conventional directories next to the native library.
const (
	pluginDirName = "plugins"
	qmlDirName    = "qml"
)

// AuxPaths are the directories found next to the resolved library. Empty
// fields mean the directory does not exist.
type AuxPaths struct {
	LibDir    string
	PluginDir string
	QMLDir    string
}

// discoverAuxPaths looks for the plugin and QML import directories beside
// libPath. Missing directories are normal.
func discoverAuxPaths(libPath string, fsys statFS) AuxPaths {
	if libPath == "" {
		return AuxPaths{}
	}
	dir := filepath.Dir(libPath)
	aux := AuxPaths{LibDir: dir}
	if p := filepath.Join(dir, pluginDirName); isDir(fsys, p) {
		aux.PluginDir = p
	}
	if p := filepath.Join(dir, qmlDirName); isDir(fsys, p) {
		aux.QMLDir = p
	}
	return aux
}

// vars returns the environment assignments for aux. On Windows the library
// directory is appended to PATH so plugins loaded later by the library can
// find its dependencies; the entry is added only once.
func (a AuxPaths) vars(env environ, goos string) [][2]string {
	var out [][2]string
	if a.PluginDir != "" {
		out = append(out, [2]string{envPluginPath, a.PluginDir})
	}
	if a.QMLDir != "" {
		out = append(out, [2]string{envQMLPath, a.QMLDir})
	}
	if goos == "windows" && a.LibDir != "" {
		if path, ok := appendPathList(env.Getenv(envPath), a.LibDir, listSeparator(goos)); ok {
			out = append(out, [2]string{envPath, path})
		}
	}
	return out
}

// apply writes aux into env and returns the assignments it made. Failures
// are logged and otherwise ignored.
func (a AuxPaths) apply(env environ, goos string) [][2]string {
	assign := a.vars(env, goos)
	for _, kv := range assign {
		if err := env.Setenv(kv[0], kv[1]); err != nil {
			Logger().Warn("failed to set environment variable",
				zap.String("key", kv[0]),
				zap.Error(err))
		}
	}
	return assign
}

func appendPathList(list, dir, sep string) (string, bool) {
	if list == "" {
		return dir, true
	}
	for _, entry := range strings.Split(list, sep) {
		if strings.EqualFold(filepath.Clean(entry), filepath.Clean(dir)) {
			return list, false
		}
	}
	return list + sep + dir, true
}
