package gcs

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/dsfetch/dsfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// config holds internal GCS client configuration
type config struct {
	credentialsFile string
	anonymous       bool
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithCredentialsFile authenticates with a service account key file
func WithCredentialsFile(path string) Option {
	return func(c *config) {
		c.credentialsFile = path
	}
}

// WithAnonymous accesses public buckets without credentials
func WithAnonymous(anonymous bool) Option {
	return func(c *config) {
		c.anonymous = anonymous
	}
}

// Client fetches objects from gs:// URLs. The storage client is created on first use
// so that runs against http sources never need Google credentials.
type Client struct {
	cfg config

	once    sync.Once
	client  *storage.Client
	initErr error
}

// NewClient creates a Fetcher for gs:// URLs
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c
}

func (c *Client) storageClient(ctx context.Context) (*storage.Client, error) {
	c.once.Do(func() {
		var clientOpts []option.ClientOption
		if c.cfg.anonymous {
			clientOpts = append(clientOpts, option.WithoutAuthentication())
		} else if c.cfg.credentialsFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(c.cfg.credentialsFile))
		}

		c.client, c.initErr = storage.NewClient(ctx, clientOpts...)
		if c.initErr != nil {
			c.initErr = goerr.Wrap(c.initErr, "failed to create GCS client")
		}
	})
	return c.client, c.initErr
}

// Fetch opens a reader on the object referenced by a gs://bucket/object URL
func (c *Client) Fetch(ctx context.Context, rawURL string) (*interfaces.Stream, error) {
	bucket, object, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	client, err := c.storageClient(ctx)
	if err != nil {
		return nil, err
	}

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open GCS object",
			goerr.V("bucket", bucket),
			goerr.V("object", object),
		)
	}

	return &interfaces.Stream{
		Body: reader,
		Size: reader.Attrs.Size,
	}, nil
}

// Close releases the storage client if it was created
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ParseURL splits a gs://bucket/object URL
func ParseURL(rawURL string) (bucket, object string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to parse GCS URL", goerr.V("url", rawURL))
	}
	if u.Scheme != "gs" {
		return "", "", fmt.Errorf("not a gs:// URL: %s", rawURL)
	}

	bucket = u.Host
	object = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("GCS URL must be gs://bucket/object: %s", rawURL)
	}
	return bucket, object, nil
}
