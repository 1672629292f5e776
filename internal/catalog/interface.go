package catalog

import "context"

// Source loads the livestream catalog and normalizes it into entries.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
}

// Entry is one video from the catalog. VideoID is always populated; Title may
// be empty when the catalog row carried only a URL.
type Entry struct {
	VideoID string
	Title   string
	URL     string
}
