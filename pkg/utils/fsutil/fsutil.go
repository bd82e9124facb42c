// Package fsutil contains helpers for paths given on the command line.
package fsutil

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Exists returns whether the file or directory exists. Symlinks are followed.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, goerr.Wrap(err, "failed to stat path", goerr.V("path", path))
}

// ExpandHome replaces a leading "~" or "~user" with the home directory.
// Paths not starting with "~" are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	rest := path[1:]
	name := rest
	if idx := strings.IndexRune(rest, filepath.Separator); idx >= 0 {
		name = rest[:idx]
	}
	rest = rest[len(name):]

	var home string
	if name == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", goerr.Wrap(err, "failed to resolve home directory", goerr.V("path", path))
		}
		home = dir
	} else {
		usr, err := user.Lookup(name)
		if err != nil {
			return "", goerr.Wrap(err, "failed to lookup home directory", goerr.V("path", path), goerr.V("user", name))
		}
		home = usr.HomeDir
	}

	return filepath.Join(home, rest), nil
}

// ReplaceExt swaps the extension of the last path element, or appends ext when there is none.
// "./ADEChallengeData2016" becomes "./ADEChallengeData2016.zip".
func ReplaceExt(path, ext string) string {
	path = filepath.Clean(path)
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// SamePath reports whether a and b refer to the same location after cleaning and
// resolving them against the working directory.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
