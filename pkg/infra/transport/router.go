package transport

import (
	"context"
	"net/url"
	"strings"

	"github.com/dsfetch/dsfetch/pkg/domain/interfaces"
	"github.com/dsfetch/dsfetch/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Router dispatches Fetch calls to a transport by URL scheme
type Router struct {
	fetchers map[string]interfaces.Fetcher
}

// Option is a functional option for Router configuration
type Option func(*Router)

// WithFetcher registers a transport for one or more schemes
func WithFetcher(fetcher interfaces.Fetcher, schemes ...string) Option {
	return func(r *Router) {
		for _, scheme := range schemes {
			r.fetchers[strings.ToLower(scheme)] = fetcher
		}
	}
}

// New creates a Router
func New(opts ...Option) *Router {
	r := &Router{
		fetchers: make(map[string]interfaces.Fetcher),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch implements interfaces.Fetcher
func (r *Router) Fetch(ctx context.Context, rawURL string) (*interfaces.Stream, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse url", goerr.V("url", rawURL))
	}

	fetcher, ok := r.fetchers[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, goerr.Wrap(model.ErrUnsupportedScheme, "no transport for url",
			goerr.V("url", rawURL),
			goerr.V("scheme", u.Scheme),
		)
	}

	return fetcher.Fetch(ctx, rawURL)
}
