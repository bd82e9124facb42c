package config

import (
	"time"

	httpinfra "github.com/dsfetch/dsfetch/pkg/infra/http"
	"github.com/urfave/cli/v3"
)

// HTTP holds HTTP transport configuration
type HTTP struct {
	AuthToken string `masq:"secret"`
	Timeout   time.Duration
}

// Flags returns CLI flags for HTTP configuration
func (c *HTTP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-token",
			Usage:       "Bearer token sent with HTTP downloads (for private mirrors)",
			Destination: &c.AuthToken,
			Sources:     cli.EnvVars("DSFETCH_AUTH_TOKEN"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Overall HTTP download timeout, 0 for none",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("DSFETCH_HTTP_TIMEOUT"),
		},
	}
}

// Options returns HTTP client options
func (c *HTTP) Options() []httpinfra.Option {
	opts := []httpinfra.Option{
		httpinfra.WithTimeout(c.Timeout),
	}
	if c.AuthToken != "" {
		opts = append(opts, httpinfra.WithAuthToken(c.AuthToken))
	}
	return opts
}
