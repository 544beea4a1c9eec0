// Package common provides shared dependency wiring for CLI commands.
package common

import (
	"fmt"
	"net/http"

	"github.com/spf13/viper"

	"github.com/jonesrussell/gorecipe/internal/config"
	"github.com/jonesrussell/gorecipe/internal/fetcher"
	"github.com/jonesrussell/gorecipe/internal/importer"
	"github.com/jonesrussell/gorecipe/internal/logger"
	"github.com/jonesrussell/gorecipe/internal/metrics"
	"github.com/jonesrussell/gorecipe/internal/video"
)

// Deps holds the dependencies every command needs.
type Deps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewDeps loads configuration from viper and creates the logger.
func NewDeps(opts ...config.Option) (*Deps, error) {
	if viper.GetBool("app.debug") {
		opts = append(opts, config.WithDebug(true))
	}

	cfg, err := config.Load(viper.GetViper(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &Deps{Config: cfg, Logger: log}, nil
}

// NewImporter wires the full import pipeline from the loaded config.
func NewImporter(deps *Deps, m *metrics.Metrics) *importer.Importer {
	fetchOpts := []fetcher.Option{
		fetcher.WithClient(&http.Client{Timeout: deps.Config.Fetch.Timeout}),
	}
	for key, value := range deps.Config.Fetch.ExtraHeaders {
		fetchOpts = append(fetchOpts, fetcher.WithHeader(key, value))
	}

	transcripts := video.NewTranscriptClient(deps.Logger)

	return importer.New(deps.Logger,
		importer.WithFetcher(fetcher.New(deps.Logger, fetchOpts...)),
		importer.WithVideoPipeline(video.NewPipeline(transcripts, deps.Logger)),
		importer.WithMetrics(m),
	)
}
