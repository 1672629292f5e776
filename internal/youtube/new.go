package youtube

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
)

const (
	defaultAPIBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultOembedURL  = "https://www.youtube.com/oembed"
)

type implClient struct {
	apiKey     string
	httpClient *http.Client
	apiBaseURL string
	oembedURL  string
	logger     logger.Logger
}

// New creates a new Client instance
func New(apiKey string, log logger.Logger) Client {
	return &implClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBaseURL: defaultAPIBaseURL,
		oembedURL:  defaultOembedURL,
		logger:     log,
	}
}
