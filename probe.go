package qmlnet

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
)

// matchesLibraryFile reports whether path names fileName, allowing the
// versioned suffixes of ELF sonames (libQmlNet.so.1.2).
func matchesLibraryFile(path, fileName string) bool {
	base := filepath.Base(path)
	return base == fileName || strings.HasPrefix(base, fileName+".")
}

// findMappedLibrary scans a /proc/<pid>/maps listing for the file backing
// fileName.
func findMappedLibrary(r io.Reader, fileName string) (string, bool) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 6 {
			continue
		}
		path := strings.Join(fields[5:], " ")
		if strings.HasPrefix(path, "/") && matchesLibraryFile(path, fileName) {
			return path, true
		}
	}
	return "", false
}

// findLoadedImage picks fileName out of a list of loaded image paths.
func findLoadedImage(images []string, fileName string) (string, bool) {
	for _, img := range images {
		if matchesLibraryFile(img, fileName) {
			return img, true
		}
	}
	return "", false
}
