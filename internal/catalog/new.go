package catalog

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
)

const defaultGitHubAPIURL = "https://api.github.com"

type implSource struct {
	cfg        config.CatalogConfig
	token      string
	httpClient *http.Client
	apiBaseURL string
	logger     logger.Logger
}

// New creates a Source. When the config names a GitHub repository the catalog
// is fetched through the contents API, otherwise it is read from a local file.
func New(cfg config.CatalogConfig, token string, log logger.Logger) Source {
	return &implSource{
		cfg:        cfg,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBaseURL: defaultGitHubAPIURL,
		logger:     log,
	}
}
