package config

import (
	"os"
	"testing"
)

// chdirTemp changes into a fresh temp directory for the duration of the
// test, restoring the previous working directory on cleanup (like T.Chdir
// in Go 1.24+).
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
