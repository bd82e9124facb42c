package config

import (
	"github.com/dsfetch/dsfetch/pkg/domain/model"
	"github.com/dsfetch/dsfetch/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Fetch holds the arguments of a single fetch run
type Fetch struct {
	Dataset     string
	URL         string
	Destination string
	ZipPath     string
	Overwrite   bool
	NoProgress  bool
}

// Flags returns CLI flags for fetch configuration
func (c *Fetch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Aliases:     []string{"d"},
			Usage:       "Registered dataset to fetch",
			Value:       types.DefaultDataset.String(),
			Destination: &c.Dataset,
			Sources:     cli.EnvVars("DSFETCH_DATASET"),
		},
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Location of the dataset archive (default: the registered URL)",
			Destination: &c.URL,
			Sources:     cli.EnvVars("DSFETCH_URL"),
		},
		&cli.StringFlag{
			Name:        "destination",
			Aliases:     []string{"o"},
			Usage:       "Directory where the extracted dataset should live (default: the registered destination)",
			Destination: &c.Destination,
			Sources:     cli.EnvVars("DSFETCH_DESTINATION"),
		},
		&cli.StringFlag{
			Name:        "zip-path",
			Usage:       "Explicit path for the downloaded zip file (default: destination with a .zip suffix)",
			Destination: &c.ZipPath,
			Sources:     cli.EnvVars("DSFETCH_ZIP_PATH"),
		},
		&cli.BoolFlag{
			Name:        "overwrite",
			Usage:       "Replace existing archive or extracted directory if present",
			Destination: &c.Overwrite,
			Sources:     cli.EnvVars("DSFETCH_OVERWRITE"),
		},
		&cli.BoolFlag{
			Name:        "no-progress",
			Usage:       "Disable progress bars",
			Destination: &c.NoProgress,
			Sources:     cli.EnvVars("DSFETCH_NO_PROGRESS"),
		},
	}
}

// Request builds a FetchRequest, falling back to the dataset defaults for unset values
func (c *Fetch) Request(ds *model.Dataset) *model.FetchRequest {
	req := &model.FetchRequest{
		URL:         c.URL,
		Destination: c.Destination,
		ArchivePath: c.ZipPath,
		ExpectedDir: ds.ExpectedDir,
		Overwrite:   c.Overwrite,
	}
	if req.URL == "" {
		req.URL = ds.URL
	}
	if req.Destination == "" {
		req.Destination = ds.Destination
	}
	return req
}
