package video

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// SearchAPI is the slice of the YouTube Data API the service needs.
type SearchAPI interface {
	// Search returns video IDs for a query, in relevance order.
	Search(ctx context.Context, query string, maxResults int64) ([]string, error)
	// Stats returns view/like counts for the given video IDs. IDs the
	// API does not report on are absent from the map.
	Stats(ctx context.Context, ids []string) (map[string]VideoStats, error)
}

type VideoStats struct {
	Views uint64
	Likes uint64
}

type youtubeAPI struct {
	svc *youtube.Service
}

// NewYouTubeAPI builds a Data API v3 client authenticated by API key.
func NewYouTubeAPI(ctx context.Context, apiKey string) (SearchAPI, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube client: %w", err)
	}
	return &youtubeAPI{svc: svc}, nil
}

func (y *youtubeAPI) Search(ctx context.Context, query string, maxResults int64) ([]string, error) {
	// "-#shorts" keeps vertical short-form clips out of the results;
	// the remaining filters restrict to embeddable mid-length videos.
	resp, err := y.svc.Search.List([]string{"snippet"}).
		Q(query + " -#shorts").
		Type("video").
		MaxResults(maxResults).
		VideoEmbeddable("true").
		VideoSyndicated("true").
		VideoDuration("medium").
		RelevanceLanguage("en").
		RegionCode("US").
		Order("relevance").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	var ids []string
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	return ids, nil
}

func (y *youtubeAPI) Stats(ctx context.Context, ids []string) (map[string]VideoStats, error) {
	resp, err := y.svc.Videos.List([]string{"statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube statistics: %w", err)
	}
	stats := make(map[string]VideoStats, len(resp.Items))
	for _, item := range resp.Items {
		if item.Statistics == nil {
			continue
		}
		stats[item.Id] = VideoStats{
			Views: item.Statistics.ViewCount,
			Likes: item.Statistics.LikeCount,
		}
	}
	return stats, nil
}
