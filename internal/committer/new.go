package committer

import (
	"github.com/nguyentantai21042004/stream-scribe/internal/config"
	"github.com/nguyentantai21042004/stream-scribe/internal/logger"
	"github.com/nguyentantai21042004/stream-scribe/pkg/executor"
)

type implCommitter struct {
	cfg      config.GitConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Committer driving the git CLI through the executor.
func New(cfg config.GitConfig, exec executor.Executor, log logger.Logger) Committer {
	return &implCommitter{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
