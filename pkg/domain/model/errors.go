package model

import "errors"

var (
	// ErrInvalidRequest is returned when a fetch request is missing required fields
	ErrInvalidRequest = errors.New("invalid fetch request")

	// ErrInvalidDestination is returned when the destination looks like an archive file
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrAlreadyExists is returned when a leftover extraction directory would collide
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnsafeEntry is returned when an archive entry would escape the extraction root
	ErrUnsafeEntry = errors.New("unsafe archive entry")

	// ErrUnknownDataset is returned when a dataset name is not in the registry
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrUnsupportedScheme is returned when no transport handles a URL scheme
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
)
