package transcriber

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/stream-scribe/internal/catalog"
	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
	"github.com/nguyentantai21042004/stream-scribe/internal/store"
	"github.com/nguyentantai21042004/stream-scribe/internal/youtube"
)

// Groq exposes Whisper through an OpenAI-compatible surface.
const groqBaseURL = "https://api.groq.com/openai/v1"

type implTranscriber struct {
	cfg        *config.Config
	source     catalog.Source
	yt         youtube.Client
	store      store.Store
	client     *openai.Client
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Transcriber backed by the Groq Whisper API.
func New(cfg *config.Config, source catalog.Source, yt youtube.Client, st store.Store, log logger.Logger) Transcriber {
	clientCfg := openai.DefaultConfig(cfg.Secrets.GroqAPIKey)
	clientCfg.BaseURL = groqBaseURL

	return &implTranscriber{
		cfg:        cfg,
		source:     source,
		yt:         yt,
		store:      st,
		client:     openai.NewClientWithConfig(clientCfg),
		httpClient: &http.Client{Timeout: 10 * time.Minute},
		logger:     log,
	}
}
