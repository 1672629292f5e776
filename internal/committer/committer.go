package committer

import (
	"context"
	"fmt"
	"strings"
)

// noopMarkers are the git messages that mean the commit was a no-op rather
// than a failure.
var noopMarkers = []string{
	"nothing to commit",
	"nothing added to commit",
	"no changes added to commit",
}

// CommitAndPush stages the output directory and publishes it. All git
// commands run inside the configured repository directory. A commit that
// fails because the tree is clean is treated as success and the push is
// skipped since there is nothing new to publish.
func (c *implCommitter) CommitAndPush(ctx context.Context, dir string) (bool, error) {
	if _, err := c.executor.ExecuteInDir(ctx, c.cfg.RepoDir, "git", "add", dir); err != nil {
		return false, fmt.Errorf("git add: %w", err)
	}

	args := []string{}
	if c.cfg.AuthorName != "" {
		args = append(args, "-c", "user.name="+c.cfg.AuthorName)
	}
	if c.cfg.AuthorEmail != "" {
		args = append(args, "-c", "user.email="+c.cfg.AuthorEmail)
	}
	args = append(args, "commit", "-m", c.cfg.Message)

	out, err := c.executor.ExecuteInDir(ctx, c.cfg.RepoDir, "git", args...)
	if err != nil {
		if isNoop(out) || isNoop(err.Error()) {
			c.logger.Info(ctx, "No changes in %s, nothing to commit", dir)
			return false, nil
		}
		return false, fmt.Errorf("git commit: %w", err)
	}

	if _, err := c.executor.ExecuteInDir(ctx, c.cfg.RepoDir, "git", "push", c.cfg.Remote); err != nil {
		return false, fmt.Errorf("git push: %w", err)
	}

	c.logger.Info(ctx, "Committed and pushed %s", dir)
	return true, nil
}

func isNoop(s string) bool {
	for _, marker := range noopMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
