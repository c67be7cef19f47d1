package vmf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Extension is the file extension of Valve Map Format files.
const Extension = ".vmf"

// DefaultFixSuffix is appended to the base name of a fixed copy.
const DefaultFixSuffix = "_VERTALERT"

// ReadFile validates path and returns the whole file as text.
// Line endings are kept exactly as stored.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return "", fmt.Errorf("reading VMF file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}
	if filepath.Ext(path) != Extension {
		return "", fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading VMF file: %w", err)
	}
	return string(data), nil
}

// WriteFile creates or truncates path and writes text to it.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing VMF file: %w", err)
	}
	return nil
}

// FixedName returns the default output path for a fixed copy of path,
// e.g. "maps/test.vmf" becomes "maps/test_VERTALERT.vmf".
func FixedName(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultFixSuffix
	}
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + suffix + ext
}
