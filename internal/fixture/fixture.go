// Package fixture materializes txtar archives as test directories.
package fixture

import (
	"golang.org/x/tools/txtar"
	"os"
	"path/filepath"
	"testing"
)

// Extract writes every archive member under a fresh temporary directory and
// returns the directory.
func Extract(t testing.TB, archive string) string {
	t.Helper()
	dir := t.TempDir()
	Write(t, dir, archive)
	return dir
}

// Write writes archive members under dir, replacing existing files
func Write(t testing.TB, dir string, archive string) {
	t.Helper()
	for _, member := range txtar.Parse([]byte(archive)).Files {
		location := filepath.Join(dir, filepath.FromSlash(member.Name))
		if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
			t.Fatalf("failed to create %v: %v", location, err)
		}
		if err := os.WriteFile(location, member.Data, 0o644); err != nil {
			t.Fatalf("failed to write %v: %v", location, err)
		}
	}
}
