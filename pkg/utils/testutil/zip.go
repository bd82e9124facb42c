// Package testutil provides fixtures shared by package tests
package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"sort"
	"testing"
)

// ZipBytes builds a zip archive in memory. Entries whose name ends with "/" are directories.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a zip archive built by ZipBytes to path
func WriteZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	if err := os.WriteFile(path, ZipBytes(t, files), 0644); err != nil {
		t.Fatalf("failed to write zip file %s: %v", path, err)
	}
}
