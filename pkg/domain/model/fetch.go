package model

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// FetchStatus is the outcome of a fetch run that did not fail
type FetchStatus string

const (
	// FetchStatusExtracted means the archive was extracted into the destination
	FetchStatusExtracted FetchStatus = "extracted"
	// FetchStatusSkipped means the destination already existed and overwrite was not requested
	FetchStatusSkipped FetchStatus = "skipped"
)

// FetchRequest represents a single fetch-and-unpack run
type FetchRequest struct {
	URL         string // Archive location (http, https or gs)
	Destination string // Directory where the extracted dataset should live
	ArchivePath string // Where to stage the archive; derived from Destination when empty
	ExpectedDir string // Top-level directory name baked into the archive
	Overwrite   bool   // Replace existing archive and extracted directories
}

// Validate checks the request before any I/O happens
func (x *FetchRequest) Validate() error {
	if x.URL == "" {
		return goerr.Wrap(ErrInvalidRequest, "url is required")
	}
	if x.Destination == "" {
		return goerr.Wrap(ErrInvalidRequest, "destination is required")
	}
	if strings.EqualFold(filepath.Ext(x.Destination), ".zip") {
		return goerr.Wrap(ErrInvalidDestination, "destination must be a directory, not a zip file path",
			goerr.V("destination", x.Destination))
	}
	if x.ExpectedDir == "" || x.ExpectedDir != filepath.Base(x.ExpectedDir) {
		return goerr.Wrap(ErrInvalidRequest, "expected directory must be a single path element",
			goerr.V("expected_dir", x.ExpectedDir))
	}
	return nil
}

// FetchResult represents the result of a fetch run
type FetchResult struct {
	Status           FetchStatus
	Destination      string
	ArchivePath      string
	Downloaded       bool  // False when a cached archive was reused
	DownloadedBytes  int64 // Bytes written to ArchivePath in this run
	ExtractedEntries int   // Number of archive entries extracted
	Renamed          bool  // True when the expected directory was moved to Destination
}
