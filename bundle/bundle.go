// Package bundle unpacks a native library shipped inside the executable so
// the bootstrap can load it from disk.
package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crgimenes/qmlnet"
)

// Extract writes lib to the temp directory and returns the file path. Pass
// it to qmlnet.WithLibraryName.
func Extract(fileName, version string, lib []byte) (string, error) {
	return ExtractTo(os.TempDir(), fileName, version, lib)
}

// ExtractTo writes lib under root in a directory keyed by version and
// content digest and returns the file path. An existing copy is reused.
func ExtractTo(root, fileName, version string, lib []byte) (string, error) {
	if len(lib) == 0 {
		return "", fmt.Errorf("bundle: %s is empty", fileName)
	}
	sum, err := qmlnet.Fingerprint(bytes.NewReader(lib))
	if err != nil {
		return "", fmt.Errorf("bundle: %w", err)
	}
	dir := filepath.Join(root, "qmlnet-"+version+"-"+sum[:12])
	file := filepath.Join(dir, fileName)

	if fi, err := os.Stat(file); err == nil && fi.Size() == int64(len(lib)) {
		return file, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("bundle: %w", err)
	}
	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return "", fmt.Errorf("bundle: %w", err)
	}
	if _, err := tmp.Write(lib); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("bundle: write %s: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("bundle: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o755); err != nil { //nolint:gosec
		os.Remove(tmp.Name())
		return "", fmt.Errorf("bundle: %w", err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("bundle: %w", err)
	}
	return file, nil
}
