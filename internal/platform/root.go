package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoWorkspace is returned by FindRoot when no workspace marker is found.
var ErrNoWorkspace = errors.New("not inside a twodo workspace (run 'twodo init')")

// FindRoot walks up from startDir looking for a directory that holds the
// system directory (".twodo" unless overridden) and returns its absolute path.
func FindRoot(startDir string, systemDir ...string) (string, error) {
	marker := DefaultSystemDir
	if len(systemDir) > 0 && systemDir[0] != "" {
		marker = systemDir[0]
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, marker)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNoWorkspace
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
