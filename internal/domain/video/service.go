package video

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rehabflow/rehabflow/internal/platform/cache"
)

var (
	// ErrNoKeywords means the caller supplied nothing to search for.
	ErrNoKeywords = errors.New("no search keywords given")
	// ErrNoResults means the search ran but nothing usable came back.
	ErrNoResults = errors.New("no matching videos found")
	// ErrSearchFailed wraps YouTube API errors.
	ErrSearchFailed = errors.New("video search failed")
)

const (
	maxSearchResults = 10
	cacheTTL         = 24 * time.Hour
)

// Composite ranking weights. Search rank carries the relevance signal,
// views and likes reward popular videos on a log scale, and the
// like/view ratio (capped at 20%) rewards well-received ones.
const (
	weightRank   = 0.30
	weightViews  = 0.35
	weightLikes  = 0.25
	weightRatio  = 0.10
	likeRatioCap = 0.20
)

// Result is the selected exercise video.
type Result struct {
	VideoID  string `json:"video_id"`
	EmbedURL string `json:"video_url"`
	Query    string `json:"query"`
}

type Service struct {
	api   SearchAPI
	cache cache.Cache
}

func NewService(api SearchAPI, c cache.Cache) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{api: api, cache: c}
}

// FindBestVideo searches YouTube for the keywords and returns the
// highest-scoring embeddable video. Results are cached per query for a
// day since the same exercise names recur across users.
func (s *Service) FindBestVideo(ctx context.Context, keywords []string) (*Result, error) {
	query := buildQuery(keywords)
	if query == "" {
		return nil, ErrNoKeywords
	}
	if s.api == nil {
		return nil, fmt.Errorf("%w: no API key configured", ErrSearchFailed)
	}

	cacheKey := "video:" + query
	var cached Result
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	ids, err := s.api.Search(ctx, query, maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	if len(ids) == 0 {
		return nil, ErrNoResults
	}

	stats, err := s.api.Stats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	best := pickBest(ids, stats)
	if best == "" {
		return nil, ErrNoResults
	}

	result := &Result{
		VideoID:  best,
		EmbedURL: "https://www.youtube.com/embed/" + best,
		Query:    query,
	}
	if err := s.cache.SetJSON(ctx, cacheKey, result, cacheTTL); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("video cache write failed")
	}
	return result, nil
}

func buildQuery(keywords []string) string {
	var parts []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, " ")
}

// pickBest scores the candidates that have statistics and returns the
// winner. Videos missing from stats are dropped entirely; search rank is
// recomputed over the surviving candidates so it stays in [0,1].
func pickBest(ids []string, stats map[string]VideoStats) string {
	type candidate struct {
		id string
		VideoStats
	}
	var candidates []candidate
	for _, id := range ids {
		st, ok := stats[id]
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{id: id, VideoStats: st})
	}
	if len(candidates) == 0 {
		return ""
	}

	var maxLogViews, maxLogLikes float64
	for _, c := range candidates {
		maxLogViews = math.Max(maxLogViews, math.Log1p(float64(c.Views)))
		maxLogLikes = math.Max(maxLogLikes, math.Log1p(float64(c.Likes)))
	}

	var bestID string
	bestScore := math.Inf(-1)
	n := float64(len(candidates))
	for rank, c := range candidates {
		score := weightRank * (1 - float64(rank)/n)
		if maxLogViews > 0 {
			score += weightViews * math.Log1p(float64(c.Views)) / maxLogViews
		}
		if maxLogLikes > 0 {
			score += weightLikes * math.Log1p(float64(c.Likes)) / maxLogLikes
		}
		if c.Views > 0 {
			ratio := math.Min(float64(c.Likes)/float64(c.Views), likeRatioCap)
			score += weightRatio * ratio / likeRatioCap
		}
		if score > bestScore {
			bestScore = score
			bestID = c.id
		}
	}
	return bestID
}
