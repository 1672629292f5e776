package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// doGet issues a GET against the Data API and decodes the JSON body into out.
func (c *implClient) doGet(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.apiBaseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}

// VideoTitle resolves a video title through the oEmbed endpoint. The Data API
// quota is not charged for oEmbed, so this is the cheap path for single titles.
func (c *implClient) VideoTitle(ctx context.Context, videoID string) (string, error) {
	params := url.Values{}
	params.Set("url", "https://www.youtube.com/watch?v="+videoID)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.oembedURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var oe oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&oe); err != nil {
		return "", fmt.Errorf("decode oembed response: %w", err)
	}
	if oe.Title == "" {
		return "Video " + videoID, nil
	}

	return oe.Title, nil
}

// BuildCatalog resolves the channel, fetches its info and past livestreams and
// assembles the catalog document.
func (c *implClient) BuildCatalog(ctx context.Context, channelURL string, maxResults int) (*Catalog, error) {
	channelID, err := c.ResolveChannelID(ctx, channelURL)
	if err != nil {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}

	info, err := c.ChannelInfo(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("channel info: %w", err)
	}

	streams, err := c.Livestreams(ctx, channelID, maxResults)
	if err != nil {
		return nil, fmt.Errorf("list livestreams: %w", err)
	}

	return &Catalog{
		Channel:     *info,
		Livestreams: streams,
		Total:       len(streams),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}, nil
}
