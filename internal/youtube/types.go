package youtube

// ChannelInfo describes a channel as written into the catalog header.
type ChannelInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	PublishedAt     string `json:"publishedAt"`
	ViewCount       string `json:"viewCount"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

// Thumbnail is a single thumbnail variant from the API.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Livestream is one past broadcast entry in the catalog.
type Livestream struct {
	ID                 string               `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	PublishedAt        string               `json:"publishedAt"`
	ChannelID          string               `json:"channelId"`
	ChannelTitle       string               `json:"channelTitle"`
	Thumbnails         map[string]Thumbnail `json:"thumbnails,omitempty"`
	Duration           string               `json:"duration"`
	ViewCount          string               `json:"viewCount"`
	LikeCount          string               `json:"likeCount"`
	CommentCount       string               `json:"commentCount"`
	ActualStartTime    string               `json:"actualStartTime,omitempty"`
	ActualEndTime      string               `json:"actualEndTime,omitempty"`
	ScheduledStartTime string               `json:"scheduledStartTime,omitempty"`
	ConcurrentViewers  string               `json:"concurrentViewers"`
	URL                string               `json:"url"`
}

// Catalog is the full extraction result written to livestreams.json.
type Catalog struct {
	Channel     ChannelInfo  `json:"channel"`
	Livestreams []Livestream `json:"livestreams"`
	Total       int          `json:"total"`
	GeneratedAt string       `json:"generated_at"`
}

// API response subsets. Only the fields the pipeline reads are declared.

type channelsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount       string `json:"viewCount"`
			SubscriberCount string `json:"subscriberCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			ChannelID string `json:"channelId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string               `json:"title"`
			Description  string               `json:"description"`
			PublishedAt  string               `json:"publishedAt"`
			ChannelID    string               `json:"channelId"`
			ChannelTitle string               `json:"channelTitle"`
			Thumbnails   map[string]Thumbnail `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		LiveStreamingDetails *struct {
			ActualStartTime    string `json:"actualStartTime"`
			ActualEndTime      string `json:"actualEndTime"`
			ScheduledStartTime string `json:"scheduledStartTime"`
			ConcurrentViewers  string `json:"concurrentViewers"`
		} `json:"liveStreamingDetails"`
	} `json:"items"`
}

type oembedResponse struct {
	Title string `json:"title"`
}
