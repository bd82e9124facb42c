package config

import (
	"io"
	"os"

	"github.com/dsfetch/dsfetch/pkg/infra/registry"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Registry holds dataset registry configuration
type Registry struct {
	Path string
}

// Flags returns CLI flags for registry configuration
func (c *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "registry",
			Usage:       "TOML file with additional or overriding dataset definitions",
			Destination: &c.Path,
			Sources:     cli.EnvVars("DSFETCH_REGISTRY"),
		},
	}
}

// Load builds the registry from the built-in datasets and the optional file
func (c *Registry) Load() (*registry.Registry, error) {
	var extra []io.Reader
	if c.Path != "" {
		fd, err := os.Open(c.Path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open registry file", goerr.V("path", c.Path))
		}
		defer fd.Close()
		extra = append(extra, fd)
	}

	reg, err := registry.Load(extra...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load registry", goerr.V("path", c.Path))
	}
	return reg, nil
}
