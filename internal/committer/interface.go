package committer

import "context"

// Committer persists pipeline output through source control.
type Committer interface {
	// CommitAndPush stages dir, commits with the configured message and
	// pushes. Returns false without error when there was nothing to commit.
	CommitAndPush(ctx context.Context, dir string) (bool, error)
}
