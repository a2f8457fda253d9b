// Package batch discovers repairable documents on disk and runs repairs
// across many files concurrently.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discover finds .docx and .odt files under root. Office lock files
// ("~$", ".~") and already-fixed output ("_fixed" stem suffix) are
// skipped so a rerun never reprocesses its own results. With recursive
// set, subdirectories are walked; otherwise only root itself is listed.
func Discover(root string, recursive bool) ([]string, error) {
	var paths []string

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isCandidate(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		return paths, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isCandidate(e.Name()) {
			paths = append(paths, filepath.Join(root, e.Name()))
		}
	}
	return paths, nil
}

// isCandidate reports whether a filename names a repairable document.
func isCandidate(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".docx" && ext != ".odt" {
		return false
	}
	if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".~") {
		return false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return !strings.HasSuffix(stem, "_fixed")
}
