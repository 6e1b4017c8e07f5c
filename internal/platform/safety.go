package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// sandboxDir is the directory under os.TempDir() that dev runs are re-rooted into.
const sandboxDir = "twodo-dev"

// IsDevRun reports whether the process is a `go run` or `go test` binary.
// Both are built into the temp directory; test binaries also carry a .test suffix.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolvePath returns the workspace path to use. Without sandboxing the user
// path is returned unchanged ("." when empty). With sandboxing, paths already
// under the temp directory are trusted; anything else is mapped to
// <tmp>/twodo-dev/<base name>.
func ResolvePath(userPath string, sandbox bool) string {
	if !sandbox {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if inTempDir(clean) {
		return clean
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}

	return filepath.Join(os.TempDir(), sandboxDir, name)
}

func inTempDir(path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	rel, err := filepath.Rel(os.TempDir(), path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
