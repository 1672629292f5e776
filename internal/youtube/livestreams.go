package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// livestreamKeywords marks uploads that are broadcasts even when the API
// drops liveStreamingDetails for older videos.
var livestreamKeywords = []string{"配信", "生放送", "ライブ", "live", "stream", "実況"}

// Livestreams walks the channel's uploads playlist and keeps the videos that
// were live broadcasts, up to maxResults.
func (c *implClient) Livestreams(ctx context.Context, channelID string, maxResults int) ([]Livestream, error) {
	uploadsID, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var streams []Livestream
	pageToken := ""

	for len(streams) < maxResults {
		params := url.Values{}
		params.Set("part", "snippet,contentDetails")
		params.Set("playlistId", uploadsID)
		params.Set("maxResults", "50")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var pr playlistItemsResponse
		if err := c.doGet(ctx, "playlistItems", params, &pr); err != nil {
			return streams, err
		}

		var videoIDs []string
		for _, item := range pr.Items {
			if item.ContentDetails.VideoID != "" {
				videoIDs = append(videoIDs, item.ContentDetails.VideoID)
			}
		}

		if len(videoIDs) > 0 {
			page, err := c.livestreamDetails(ctx, videoIDs)
			if err != nil {
				return streams, err
			}
			streams = append(streams, page...)
		}

		pageToken = pr.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(streams) > maxResults {
		streams = streams[:maxResults]
	}

	c.logger.Info(ctx, "Found %d livestreams for channel %s", len(streams), channelID)
	return streams, nil
}

func (c *implClient) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)

	var cr channelsResponse
	if err := c.doGet(ctx, "channels", params, &cr); err != nil {
		return "", err
	}
	if len(cr.Items) == 0 {
		return "", fmt.Errorf("channel '%s' not found", channelID)
	}

	uploads := cr.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return "", fmt.Errorf("channel '%s' has no uploads playlist", channelID)
	}

	return uploads, nil
}

// livestreamDetails fetches full details for a batch of video IDs and filters
// down to broadcasts.
func (c *implClient) livestreamDetails(ctx context.Context, videoIDs []string) ([]Livestream, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics,liveStreamingDetails")
	params.Set("id", strings.Join(videoIDs, ","))

	var vr videosResponse
	if err := c.doGet(ctx, "videos", params, &vr); err != nil {
		return nil, err
	}

	var streams []Livestream
	for _, v := range vr.Items {
		if !isLivestream(v.LiveStreamingDetails != nil, v.Snippet.Title, v.Snippet.Description) {
			continue
		}

		ls := Livestream{
			ID:                v.ID,
			Title:             v.Snippet.Title,
			Description:       v.Snippet.Description,
			PublishedAt:       v.Snippet.PublishedAt,
			ChannelID:         v.Snippet.ChannelID,
			ChannelTitle:      v.Snippet.ChannelTitle,
			Thumbnails:        v.Snippet.Thumbnails,
			Duration:          v.ContentDetails.Duration,
			ViewCount:         orZero(v.Statistics.ViewCount),
			LikeCount:         orZero(v.Statistics.LikeCount),
			CommentCount:      orZero(v.Statistics.CommentCount),
			ConcurrentViewers: "0",
			URL:               "https://www.youtube.com/watch?v=" + v.ID,
		}
		if d := v.LiveStreamingDetails; d != nil {
			ls.ActualStartTime = d.ActualStartTime
			ls.ActualEndTime = d.ActualEndTime
			ls.ScheduledStartTime = d.ScheduledStartTime
			if d.ConcurrentViewers != "" {
				ls.ConcurrentViewers = d.ConcurrentViewers
			}
		}

		streams = append(streams, ls)
	}

	return streams, nil
}

func isLivestream(hasDetails bool, title, description string) bool {
	if hasDetails {
		return true
	}
	title = strings.ToLower(title)
	description = strings.ToLower(description)
	for _, kw := range livestreamKeywords {
		if strings.Contains(title, kw) || strings.Contains(description, kw) {
			return true
		}
	}
	return false
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
