package interfaces

import (
	"context"

	"github.com/dsfetch/dsfetch/pkg/domain/model"
)

// FetchUseCase downloads a dataset archive and unpacks it
type FetchUseCase interface {
	// Fetch runs the fetch-and-unpack pipeline for a single dataset
	Fetch(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error)
}
