package cli

import (
	"context"
	"io"

	"github.com/dsfetch/dsfetch/pkg/cli/config"
	"github.com/dsfetch/dsfetch/pkg/domain/model"
	"github.com/dsfetch/dsfetch/pkg/domain/types"
	"github.com/dsfetch/dsfetch/pkg/infra/archive"
	"github.com/dsfetch/dsfetch/pkg/infra/gcs"
	httpinfra "github.com/dsfetch/dsfetch/pkg/infra/http"
	"github.com/dsfetch/dsfetch/pkg/infra/progress"
	"github.com/dsfetch/dsfetch/pkg/infra/transport"
	"github.com/dsfetch/dsfetch/pkg/usecase"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdFetch() *cli.Command {
	var (
		fetchCfg    config.Fetch
		registryCfg config.Registry
		httpCfg     config.HTTP
		gcsCfg      config.GCS
	)

	var flags []cli.Flag
	flags = append(flags, fetchCfg.Flags()...)
	flags = append(flags, registryCfg.Flags()...)
	flags = append(flags, httpCfg.Flags()...)
	flags = append(flags, gcsCfg.Flags()...)

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Download a dataset archive and extract it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			reg, err := registryCfg.Load()
			if err != nil {
				return err
			}
			ds, err := reg.Get(types.DatasetName(fetchCfg.Dataset))
			if err != nil {
				return err
			}

			req := fetchCfg.Request(ds)
			logger.Debug("Fetch configuration",
				"dataset", ds.Name,
				"request", req,
				"http", httpCfg,
				"gcs", gcsCfg,
			)

			gcsClient := gcs.NewClient(gcsCfg.Options()...)
			defer func() {
				if err := gcsClient.Close(); err != nil {
					logger.Warn("Failed to close GCS client", "error", err)
				}
			}()

			router := transport.New(
				transport.WithFetcher(httpinfra.NewClient(httpCfg.Options()...), "http", "https"),
				transport.WithFetcher(gcsClient, "gs"),
			)

			var opts []usecase.FetchOption
			if !fetchCfg.NoProgress {
				opts = append(opts, usecase.WithProgress(progress.NewFactory()))
			}

			uc := usecase.NewFetch(router, archive.NewZipOpener(), opts...)
			result, err := uc.Fetch(ctx, req)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch dataset", goerr.V("dataset", ds.Name))
			}

			printSummary(c.Root().Writer, ds, result)
			return nil
		},
	}
}

func printSummary(w io.Writer, ds *model.Dataset, result *model.FetchResult) {
	switch result.Status {
	case model.FetchStatusSkipped:
		color.New(color.FgYellow).Fprintf(w,
			"Destination %s already exists. Run with --overwrite to replace it.\n", result.Destination)
	case model.FetchStatusExtracted:
		source := "cached archive"
		if result.Downloaded {
			source = humanize.IBytes(uint64(result.DownloadedBytes)) + " downloaded"
		}
		color.New(color.FgGreen, color.Bold).Fprintf(w, "%s ready at %s", ds.Name, result.Destination)
		color.New(color.Faint).Fprintf(w, " (%d entries, %s)\n", result.ExtractedEntries, source)
	}
}
