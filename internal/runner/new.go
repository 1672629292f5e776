package runner

import (
	"github.com/nguyentantai21042004/stream-scribe/internal/committer"
	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
)

type implRunner struct {
	cfg       *config.Config
	task      Task
	committer committer.Committer
	logger    logger.Logger
}

// New creates a Runner for the given task.
func New(cfg *config.Config, task Task, com committer.Committer, log logger.Logger) Runner {
	return &implRunner{
		cfg:       cfg,
		task:      task,
		committer: com,
		logger:    log,
	}
}
