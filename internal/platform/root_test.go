package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   workspace/ (.twodo)
	//     sub/
	//       nested/
	//   empty/
	baseDir := t.TempDir()
	wsDir := filepath.Join(baseDir, "workspace")
	subDir := filepath.Join(wsDir, "sub")
	nestedDir := filepath.Join(subDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(emptyDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(wsDir, DefaultSystemDir), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: wsDir, wantRoot: wsDir},
		{name: "Start in Subdir", startPath: subDir, wantRoot: wsDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: wsDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if tt.wantErr {
				if !errors.Is(err, ErrNoWorkspace) {
					t.Fatalf("FindRoot() error = %v, want ErrNoWorkspace", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindRoot() unexpected error: %v", err)
			}
			if got != tt.wantRoot {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestFindRoot_CustomSystemDir(t *testing.T) {
	baseDir := t.TempDir()
	nested := filepath.Join(baseDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(baseDir, ".notes"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested, ".notes")
	if err != nil {
		t.Fatalf("FindRoot() unexpected error: %v", err)
	}
	if got != baseDir {
		t.Errorf("FindRoot() = %v, want %v", got, baseDir)
	}
}

func TestFindRoot_MarkerIsFile(t *testing.T) {
	baseDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(baseDir, ".marker-file"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := FindRoot(baseDir, ".marker-file"); err == nil {
		t.Fatal("expected error when the marker is a regular file")
	}
}
