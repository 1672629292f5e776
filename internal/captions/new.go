package captions

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/stream-scribe/internal/catalog"
	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
	"github.com/nguyentantai21042004/stream-scribe/internal/store"
)

const defaultTimedTextURL = "https://video.google.com/timedtext"

type implFetcher struct {
	cfg        *config.Config
	source     catalog.Source
	store      store.Store
	httpClient *http.Client
	baseURL    string
	delay      time.Duration
	logger     logger.Logger
}

// New creates a Fetcher reading from the public timedtext endpoint.
func New(cfg *config.Config, source catalog.Source, st store.Store, log logger.Logger) Fetcher {
	return &implFetcher{
		cfg:        cfg,
		source:     source,
		store:      st,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultTimedTextURL,
		delay:      time.Duration(cfg.Captions.DelaySeconds) * time.Second,
		logger:     log,
	}
}
