package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsfetch/dsfetch/pkg/domain/interfaces"
	"github.com/dsfetch/dsfetch/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ZipOpener opens zip archives from local disk
type ZipOpener struct{}

// NewZipOpener creates an ArchiveOpener for zip files
func NewZipOpener() *ZipOpener {
	return &ZipOpener{}
}

// Open implements interfaces.ArchiveOpener
func (x *ZipOpener) Open(path string) (interfaces.Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open zip archive", goerr.V("path", path))
	}
	return &zipArchive{reader: rc}, nil
}

type zipArchive struct {
	reader *zip.ReadCloser
}

func (x *zipArchive) Len() int {
	return len(x.reader.File)
}

func (x *zipArchive) Name(i int) string {
	return x.reader.File[i].Name
}

func (x *zipArchive) Close() error {
	return x.reader.Close()
}

// Extract extracts a single entry below destDir. destDir may be relative to the working
// directory.
func (x *zipArchive) Extract(i int, destDir string) error {
	file := x.reader.File[i]

	root, err := filepath.Abs(destDir)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve extraction directory", goerr.V("dest", destDir))
	}

	// Prevent path traversal attacks
	destPath := filepath.Join(root, file.Name)
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	if destPath != root && !strings.HasPrefix(destPath, prefix) {
		return goerr.Wrap(model.ErrUnsafeEntry, "entry escapes extraction directory",
			goerr.V("entry", file.Name),
			goerr.V("dest", root),
		)
	}

	mode := file.Mode()
	if mode.IsDir() {
		if err := os.MkdirAll(destPath, dirPerm(mode)); err != nil {
			return goerr.Wrap(err, "failed to create directory", goerr.V("path", destPath))
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories", goerr.V("path", filepath.Dir(destPath)))
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in zip", goerr.V("entry", file.Name))
	}
	defer rc.Close()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm(mode))
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy file content", goerr.V("path", destPath))
	}

	if err := destFile.Close(); err != nil {
		return goerr.Wrap(err, "failed to close destination file", goerr.V("path", destPath))
	}
	return nil
}

func filePerm(mode os.FileMode) os.FileMode {
	if perm := mode.Perm(); perm != 0 {
		return perm
	}
	return 0644
}

func dirPerm(mode os.FileMode) os.FileMode {
	if perm := mode.Perm(); perm&0700 == 0700 {
		return perm
	}
	return 0755
}
