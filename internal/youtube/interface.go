package youtube

import "context"

// Client defines the operations against the YouTube Data API v3 needed to
// build a livestream catalog for a channel.
type Client interface {
	ResolveChannelID(ctx context.Context, channelURL string) (string, error)
	ChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error)
	Livestreams(ctx context.Context, channelID string, maxResults int) ([]Livestream, error)
	VideoTitle(ctx context.Context, videoID string) (string, error)
	BuildCatalog(ctx context.Context, channelURL string, maxResults int) (*Catalog, error)
}
