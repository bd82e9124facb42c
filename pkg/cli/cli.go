package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/dsfetch/dsfetch/pkg/cli/config"
	"github.com/dsfetch/dsfetch/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

// Option is a functional option for Run
type Option func(*cli.Command)

// WithWriter redirects command output such as summaries and listings. Default: os.Stdout
func WithWriter(w io.Writer) Option {
	return func(c *cli.Command) {
		c.Writer = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
	)

	app := &cli.Command{
		Name:    "dsfetch",
		Usage:   "Download and unpack machine-learning dataset archives",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			logger = logger.With("run_id", uuid.NewString())

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdFetch(),
			cmdList(),
		},
		DefaultCommand: "fetch",
	}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentryCfg.Report(err)
		return err
	}

	return nil
}
