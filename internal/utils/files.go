// Package utils provides small filesystem helpers shared by CLI commands.
package utils

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// stxExt is the declaration file extension the compiler accepts.
const stxExt = ".stx"

// FindStxFiles walks dir and returns every declaration file beneath it.
// Hidden directories are skipped, matching what the watcher monitors.
func FindStxFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		switch {
		case walkErr != nil:
			return walkErr
		case d.IsDir():
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
		case strings.EqualFold(filepath.Ext(path), stxExt):
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
