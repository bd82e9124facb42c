package model

import "github.com/dsfetch/dsfetch/pkg/domain/types"

// Dataset holds the packaging facts of a dataset archive
type Dataset struct {
	Name        types.DatasetName
	Description string
	URL         string // Default archive location
	ExpectedDir string // Top-level directory the archive expands to
	Destination string // Default extraction directory
}
