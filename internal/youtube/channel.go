package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var reChannelID = regexp.MustCompile(`"channelId":"(UC[a-zA-Z0-9_-]{22})"`)

// ResolveChannelID extracts the channel ID from a channel URL. Canonical
// /channel/ URLs carry the ID directly; custom URLs (/c/, /user/, /@handle)
// are resolved by scraping the channel page, with an API search fallback.
func (c *implClient) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	if strings.Contains(channelURL, "/channel/") {
		id := strings.Split(strings.Split(channelURL, "/channel/")[1], "/")[0]
		return id, nil
	}

	name := customURLName(channelURL)
	if name == "" {
		return "", fmt.Errorf("invalid channel URL: %s", channelURL)
	}

	if id, err := c.scrapeChannelID(ctx, channelURL); err == nil {
		return id, nil
	} else {
		c.logger.Debug(ctx, "Page scrape failed for %s, falling back to search: %v", channelURL, err)
	}

	return c.searchChannelID(ctx, name)
}

func customURLName(channelURL string) string {
	for _, prefix := range []string{"/c/", "/user/", "/@"} {
		if idx := strings.Index(channelURL, prefix); idx >= 0 {
			rest := channelURL[idx+len(prefix):]
			return strings.Split(rest, "/")[0]
		}
	}
	return ""
}

// scrapeChannelID fetches the channel page HTML and looks for the embedded
// canonical channel ID.
func (c *implClient) scrapeChannelID(ctx context.Context, channelURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, channelURL, nil)
	if err != nil {
		return "", fmt.Errorf("build page request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch channel page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("channel page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read channel page: %w", err)
	}

	m := reChannelID.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("channel ID not found in page")
	}

	return string(m[1]), nil
}

// searchChannelID looks the channel up by name through the search endpoint,
// preferring an exact or containing title match over the first result.
func (c *implClient) searchChannelID(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", name)
	params.Set("type", "channel")
	params.Set("maxResults", "5")

	var sr searchResponse
	if err := c.doGet(ctx, "search", params, &sr); err != nil {
		return "", err
	}

	lower := strings.ToLower(name)
	for _, item := range sr.Items {
		title := strings.ToLower(item.Snippet.Title)
		if title == lower || strings.Contains(title, lower) {
			return item.ID.ChannelID, nil
		}
	}
	if len(sr.Items) > 0 {
		return sr.Items[0].ID.ChannelID, nil
	}

	return "", fmt.Errorf("channel '%s' not found", name)
}

// ChannelInfo fetches the channel snippet and statistics.
func (c *implClient) ChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var cr channelsResponse
	if err := c.doGet(ctx, "channels", params, &cr); err != nil {
		return nil, err
	}
	if len(cr.Items) == 0 {
		return nil, fmt.Errorf("channel '%s' not found", channelID)
	}

	item := cr.Items[0]
	subscribers := item.Statistics.SubscriberCount
	if subscribers == "" {
		subscribers = "hidden"
	}

	return &ChannelInfo{
		ID:              channelID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		PublishedAt:     item.Snippet.PublishedAt,
		ViewCount:       item.Statistics.ViewCount,
		SubscriberCount: subscribers,
		VideoCount:      item.Statistics.VideoCount,
	}, nil
}
