package transcriber

import "context"

// Transcriber runs the speech-to-text pass over the livestream catalog.
type Transcriber interface {
	Run(ctx context.Context) error
}
