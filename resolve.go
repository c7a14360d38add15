package qmlnet

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Resolution is the outcome of mapping a logical library name to a file.
// Err is nil on success; otherwise it is a *ResolutionError naming what was
// searched.
type Resolution struct {
	Name string
	Path string
	Err  error
}

// OK reports whether the resolution found a path.
func (r Resolution) OK() bool { return r.Err == nil }

// PathResolver maps a logical library name to a filesystem path.
type PathResolver interface {
	Resolve(name string) Resolution
}

// libraryFileNames returns the platform file names for a logical name, most
// conventional first.
func libraryFileNames(goos, name string) []string {
	switch goos {
	case "windows":
		return []string{name + ".dll", "lib" + name + ".dll"}
	case "darwin":
		return []string{"lib" + name + ".dylib", name + ".dylib"}
	default:
		return []string{"lib" + name + ".so", name + ".so"}
	}
}

func loaderPathVars(goos string) []string {
	switch goos {
	case "windows":
		return []string{"PATH"}
	case "darwin":
		return []string{"DYLD_LIBRARY_PATH", "DYLD_FALLBACK_LIBRARY_PATH"}
	default:
		return []string{"LD_LIBRARY_PATH"}
	}
}

func systemLibDirs(goos string) []string {
	switch goos {
	case "windows":
		return nil
	case "darwin":
		return []string{"/usr/local/lib", "/opt/homebrew/lib", "/usr/lib"}
	default:
		return []string{"/usr/local/lib", "/usr/lib", "/usr/lib64", "/lib"}
	}
}

func isPathName(name string) bool {
	return strings.ContainsAny(name, `/\`)
}

// absPath anchors a relative path at the working directory so the loader
// and aux discovery see the same file the search found.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// searchResolver walks the conventional library locations: explicit search
// directories, the executable directory, the working directory, the loader
// path variable and the system library directories.
type searchResolver struct {
	goos    string
	fs      statFS
	env     environ
	dirs    []string
	exeDir  string
	workDir string
}

func newSearchResolver(p platform, dirs []string) *searchResolver {
	abs := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" {
			abs = append(abs, absPath(d))
		}
	}
	return &searchResolver{
		goos:    p.goos,
		fs:      p.fs,
		env:     p.env,
		dirs:    abs,
		exeDir:  p.exeDir,
		workDir: p.workDir,
	}
}

func (r *searchResolver) searchDirs() []string {
	dirs := append([]string(nil), r.dirs...)
	if r.exeDir != "" {
		dirs = append(dirs, r.exeDir, filepath.Join(r.exeDir, "..", "lib"))
		if r.goos == "darwin" {
			dirs = append(dirs, filepath.Join(r.exeDir, "..", "Frameworks"))
		}
	}
	dirs = append(dirs, r.workDir)
	if r.env != nil {
		for _, key := range loaderPathVars(r.goos) {
			for _, d := range strings.Split(r.env.Getenv(key), listSeparator(r.goos)) {
				if d != "" {
					dirs = append(dirs, absPath(d))
				}
			}
		}
	}
	dirs = append(dirs, systemLibDirs(r.goos)...)

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func (r *searchResolver) Resolve(name string) Resolution {
	if isPathName(name) {
		if p := absPath(name); isFile(r.fs, p) {
			return Resolution{Name: name, Path: p}
		}
		return Resolution{Name: name, Err: &ResolutionError{Name: name, Searched: []string{name}}}
	}

	dirs := r.searchDirs()
	for _, dir := range dirs {
		for _, file := range libraryFileNames(r.goos, name) {
			p := filepath.Join(dir, file)
			if isFile(r.fs, p) {
				return Resolution{Name: name, Path: p}
			}
		}
	}
	return Resolution{Name: name, Err: &ResolutionError{Name: name, Searched: dirs}}
}

// Probe kinds, one per operating system loader model.
const (
	probeWindowsImport = "windows-import"
	probeDarwinDlopen  = "darwin-dlopen"
	probeLinuxDlopen   = "linux-dlopen"
)

func probeKindFor(goos string) string {
	switch goos {
	case "windows":
		return probeWindowsImport
	case "darwin":
		return probeDarwinDlopen
	case "linux":
		return probeLinuxDlopen
	}
	return ""
}

// probingResolver asks the operating system loader first, so the path
// matches what a plain import of the library would pick, and falls back to
// the wrapped resolver when the loader cannot find it.
type probingResolver struct {
	kind  string
	goos  string
	probe loaderProbe
	next  PathResolver
}

func (r *probingResolver) Resolve(name string) Resolution {
	if r.probe != nil && !isPathName(name) {
		for _, file := range libraryFileNames(r.goos, name) {
			path, err := r.probe(file)
			if err != nil || path == "" {
				Logger().Debug("loader probe missed",
					zap.String("probe", r.kind),
					zap.String("file", file),
					zap.Error(err))
				continue
			}
			return Resolution{Name: name, Path: path}
		}
	}
	return r.next.Resolve(name)
}
