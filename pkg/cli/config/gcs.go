package config

import (
	"github.com/dsfetch/dsfetch/pkg/infra/gcs"
	"github.com/urfave/cli/v3"
)

// GCS holds Google Cloud Storage transport configuration
type GCS struct {
	CredentialsFile string
	Anonymous       bool
}

// Flags returns CLI flags for GCS configuration
func (c *GCS) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-credentials",
			Usage:       "Service account key file for gs:// sources (default: application default credentials)",
			Destination: &c.CredentialsFile,
			Sources:     cli.EnvVars("DSFETCH_GCS_CREDENTIALS"),
		},
		&cli.BoolFlag{
			Name:        "gcs-anonymous",
			Usage:       "Access gs:// sources without credentials (public buckets)",
			Destination: &c.Anonymous,
			Sources:     cli.EnvVars("DSFETCH_GCS_ANONYMOUS"),
		},
	}
}

// Options returns GCS client options
func (c *GCS) Options() []gcs.Option {
	return []gcs.Option{
		gcs.WithCredentialsFile(c.CredentialsFile),
		gcs.WithAnonymous(c.Anonymous),
	}
}
