package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"ytmeta/internal/logging"
	"ytmeta/internal/services/ytdlp"
	"ytmeta/internal/videoid"
)

const (
	minResultLimit = 1
	maxResultLimit = 25
)

// ScoredCandidate pairs a backend result with its relevance score.
type ScoredCandidate struct {
	ytdlp.SearchResult
	Score float64
}

// Matcher ranks backend search results against a local title.
type Matcher struct {
	client ytdlp.Client
	logger *slog.Logger
}

// NewMatcher constructs a Matcher. A nil logger disables logging.
func NewMatcher(client ytdlp.Client, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Matcher{client: client, logger: logger}
}

// BestMatch runs a video search for the query and returns the top-scoring
// candidate. A query that normalizes to empty yields no match. When no
// candidate overlaps the query at all, the backend's first result is
// returned anyway so a populated result list never resolves to nothing.
func (m *Matcher) BestMatch(ctx context.Context, query string, limit int) (*ytdlp.SearchResult, error) {
	normalized := strings.ToLower(videoid.CleanSearchText(query))
	if normalized == "" {
		m.logger.Info("search skipped",
			logging.Args(logging.DecisionAttrs("best_match", "no_match", "query normalized to empty")...)...)
		return nil, nil
	}

	ranked, err := m.Candidates(ctx, normalized, limit)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		m.logger.Info("search returned nothing",
			logging.Args(logging.DecisionAttrs("best_match", "no_match", "backend returned no candidates")...)...)
		return nil, nil
	}

	top := ranked[0]
	if top.Score <= 0 {
		// No token overlap anywhere; trust the backend's own ordering.
		attrs := logging.DecisionAttrs("best_match", "fallback_first", "no candidate overlapped the query")
		attrs = append(attrs, logging.String(logging.FieldVideoID, ranked[0].ID))
		m.logger.Info("falling back to first raw result", logging.Args(attrs...)...)
		first := ranked[0].SearchResult
		return &first, nil
	}

	attrs := logging.DecisionAttrs("best_match", "scored", "highest scoring candidate selected")
	attrs = append(attrs,
		logging.String(logging.FieldVideoID, top.ID),
		logging.Float64("score", top.Score),
		logging.Int("candidates", len(ranked)),
	)
	m.logger.Info("best match selected", logging.Args(attrs...)...)

	result := top.SearchResult
	return &result, nil
}

// Candidates returns every backend result for the query, scored and ordered
// by descending score with shorter titles winning ties. When the top score
// is zero or lower the backend's original order is preserved.
func (m *Matcher) Candidates(ctx context.Context, query string, limit int) ([]ScoredCandidate, error) {
	limit = clampLimit(limit)

	results, err := m.client.SearchVideos(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	ranked := make([]ScoredCandidate, 0, len(results))
	for _, result := range results {
		ranked = append(ranked, ScoredCandidate{
			SearchResult: result,
			Score:        Score(query, result.Title),
		})
	}
	if len(ranked) > 0 && maxScore(ranked) > 0 {
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Score != ranked[j].Score {
				return ranked[i].Score > ranked[j].Score
			}
			return len(ranked[i].Title) < len(ranked[j].Title)
		})
	}
	return ranked, nil
}

func maxScore(ranked []ScoredCandidate) float64 {
	top := 0.0
	for _, candidate := range ranked {
		if candidate.Score > top {
			top = candidate.Score
		}
	}
	return top
}

func clampLimit(limit int) int {
	if limit < minResultLimit {
		return minResultLimit
	}
	if limit > maxResultLimit {
		return maxResultLimit
	}
	return limit
}
