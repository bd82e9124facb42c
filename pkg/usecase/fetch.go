package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dsfetch/dsfetch/pkg/domain/interfaces"
	"github.com/dsfetch/dsfetch/pkg/domain/model"
	"github.com/dsfetch/dsfetch/pkg/utils/fsutil"
	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DownloadChunkSize is the size of each read from the transport
const DownloadChunkSize = 1 << 20

type fetchUseCase struct {
	fetcher  interfaces.Fetcher
	opener   interfaces.ArchiveOpener
	progress interfaces.ProgressFactory
}

// FetchOption is a functional option for the fetch use case
type FetchOption func(*fetchUseCase)

// WithProgress sets the progress factory. Default: no progress output.
func WithProgress(f interfaces.ProgressFactory) FetchOption {
	return func(uc *fetchUseCase) {
		uc.progress = f
	}
}

// nopProgress discards all progress, used when no factory is set (--no-progress)
type nopProgress struct{}

func (nopProgress) Bytes(string, int64) interfaces.Progress { return nopProgress{} }
func (nopProgress) Count(string, int64) interfaces.Progress { return nopProgress{} }
func (nopProgress) Add(int64)                               {}
func (nopProgress) Close()                                  {}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(fetcher interfaces.Fetcher, opener interfaces.ArchiveOpener, opts ...FetchOption) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		fetcher:  fetcher,
		opener:   opener,
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Fetch makes sure the archive is available locally, then extracts it so that Destination
// holds exactly the archive content regardless of the top-level directory name inside it.
func (uc *fetchUseCase) Fetch(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error) {
	logger := ctxlog.From(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	destination, err := fsutil.ExpandHome(req.Destination)
	if err != nil {
		return nil, err
	}
	destination = filepath.Clean(destination)
	parent := filepath.Dir(destination)

	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create destination parent", goerr.V("path", parent))
	}

	archivePath := req.ArchivePath
	if archivePath == "" {
		archivePath = fsutil.ReplaceExt(destination, ".zip")
	} else if archivePath, err = fsutil.ExpandHome(archivePath); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create archive directory", goerr.V("path", filepath.Dir(archivePath)))
	}

	result := &model.FetchResult{
		Destination: destination,
		ArchivePath: archivePath,
	}

	archiveExists, err := fsutil.Exists(archivePath)
	if err != nil {
		return nil, err
	}
	if archiveExists && req.Overwrite {
		logger.Info("Removing existing archive", "path", archivePath)
		if err := os.Remove(archivePath); err != nil {
			return nil, goerr.Wrap(err, "failed to remove archive", goerr.V("path", archivePath))
		}
		archiveExists = false
	}

	if !archiveExists {
		n, err := uc.download(ctx, req.URL, archivePath)
		if err != nil {
			return nil, err
		}
		result.Downloaded = true
		result.DownloadedBytes = n
	} else {
		// Presence alone counts as a valid cache entry
		logger.Info("Archive already present, skipping download", "path", archivePath)
	}

	expectedDir := filepath.Join(parent, req.ExpectedDir)

	destExists, err := fsutil.Exists(destination)
	if err != nil {
		return nil, err
	}
	if destExists {
		if !req.Overwrite {
			logger.Warn("Destination already exists, run with --overwrite to replace it",
				"destination", destination,
			)
			result.Status = model.FetchStatusSkipped
			return result, nil
		}

		logger.Info("Removing existing destination", "destination", destination)
		if err := os.RemoveAll(destination); err != nil {
			return nil, goerr.Wrap(err, "failed to remove destination", goerr.V("path", destination))
		}
	}

	sameDir := fsutil.SamePath(expectedDir, destination)

	expectedExists, err := fsutil.Exists(expectedDir)
	if err != nil {
		return nil, err
	}
	if expectedExists && !sameDir {
		if !req.Overwrite {
			return nil, goerr.Wrap(model.ErrAlreadyExists, "expected directory already exists, run with --overwrite to replace it",
				goerr.V("path", expectedDir),
			)
		}

		logger.Info("Removing leftover extraction directory", "path", expectedDir)
		if err := os.RemoveAll(expectedDir); err != nil {
			return nil, goerr.Wrap(err, "failed to remove leftover directory", goerr.V("path", expectedDir))
		}
	}

	count, err := uc.extract(ctx, archivePath, parent)
	if err != nil {
		return nil, err
	}
	result.ExtractedEntries = count

	if !sameDir {
		moved, err := fsutil.Exists(expectedDir)
		if err != nil {
			return nil, err
		}
		if moved {
			if err := os.Rename(expectedDir, destination); err != nil {
				return nil, goerr.Wrap(err, "failed to move extracted directory",
					goerr.V("from", expectedDir),
					goerr.V("to", destination),
				)
			}
			result.Renamed = true
			logger.Debug("Renamed extracted directory", "from", expectedDir, "to", destination)
		}
	}

	result.Status = model.FetchStatusExtracted
	logger.Info("Dataset ready",
		"destination", destination,
		"entries", result.ExtractedEntries,
	)

	return result, nil
}

// download streams url into target in DownloadChunkSize pieces. A failed transfer leaves the
// partial file behind.
func (uc *fetchUseCase) download(ctx context.Context, url, target string) (int64, error) {
	logger := ctxlog.From(ctx)

	stream, err := uc.fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to fetch archive", goerr.V("url", url))
	}
	defer stream.Body.Close()

	if stream.Size > 0 {
		logger.Info("Downloading archive",
			"url", url,
			"target", target,
			"size", humanize.IBytes(uint64(stream.Size)),
		)
	} else {
		logger.Info("Downloading archive", "url", url, "target", target)
	}

	fd, err := os.Create(target)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create archive file", goerr.V("path", target))
	}
	defer fd.Close()

	bar := uc.progress.Bytes(fmt.Sprintf("Downloading %s", filepath.Base(target)), stream.Size)
	defer bar.Close()

	var written int64
	buf := make([]byte, DownloadChunkSize)
	for {
		n, readErr := readChunk(stream.Body, buf)
		if n > 0 {
			if _, err := fd.Write(buf[:n]); err != nil {
				return written, goerr.Wrap(err, "failed to write archive", goerr.V("path", target))
			}
			written += int64(n)
			bar.Add(int64(n))
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return written, goerr.Wrap(readErr, "failed to read archive stream",
				goerr.V("url", url),
				goerr.V("written", written),
			)
		}
	}

	if err := fd.Close(); err != nil {
		return written, goerr.Wrap(err, "failed to close archive", goerr.V("path", target))
	}

	logger.Info("Downloaded archive", "path", target, "size", humanize.IBytes(uint64(written)))
	return written, nil
}

// readChunk fills buf unless the reader fails first. Unlike io.ReadFull it returns the
// reader's own error, so a body cut short by the transport is not mistaken for EOF.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// extract writes every archive entry below dir and returns the number of entries
func (uc *fetchUseCase) extract(ctx context.Context, archivePath, dir string) (int, error) {
	logger := ctxlog.From(ctx)

	ar, err := uc.opener.Open(archivePath)
	if err != nil {
		return 0, err
	}
	defer ar.Close()

	total := ar.Len()
	logger.Info("Extracting archive", "path", archivePath, "dir", dir, "entries", total)

	bar := uc.progress.Count(fmt.Sprintf("Extracting %s", filepath.Base(archivePath)), int64(total))
	defer bar.Close()

	for i := 0; i < total; i++ {
		if err := ar.Extract(i, dir); err != nil {
			return i, goerr.Wrap(err, "failed to extract entry",
				goerr.V("entry", ar.Name(i)),
				goerr.V("archive", archivePath),
			)
		}
		bar.Add(1)
	}

	return total, nil
}
