package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"ytmeta/internal/config"
	"ytmeta/internal/logging"
	"ytmeta/internal/mapper"
	"ytmeta/internal/refine"
	"ytmeta/internal/services"
	"ytmeta/internal/services/ytdlp"
	"ytmeta/internal/videoid"
)

// Matcher finds the best remote candidate for a local title.
type Matcher interface {
	BestMatch(ctx context.Context, query string, limit int) (*ytdlp.SearchResult, error)
}

// ChannelSearcher resolves a channel identifier from free text.
type ChannelSearcher interface {
	SearchChannelFirst(ctx context.Context, query string) (string, error)
}

// RecordCache serves full records, fetching on miss.
type RecordCache interface {
	GetRecord(ctx context.Context, id string) (*mapper.RawRecord, error)
	GetChannelRecord(ctx context.Context, channelID, folderName string) (*mapper.RawRecord, error)
}

// Refiner optionally cleans up mapped titles and overviews.
type Refiner interface {
	Refine(ctx context.Context, title, description string) refine.Refinement
}

// Resolver drives the identify, fetch, map, refine sequence for one local
// file. It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	cfg      *config.Config
	matcher  Matcher
	channels ChannelSearcher
	cache    RecordCache
	refiner  Refiner
	logger   *slog.Logger
}

// New constructs a Resolver. A nil refiner disables refinement and a nil
// logger disables logging.
func New(cfg *config.Config, matcher Matcher, channels ChannelSearcher, cache RecordCache, refiner Refiner, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		cfg:      cfg,
		matcher:  matcher,
		channels: channels,
		cache:    cache,
		refiner:  refiner,
		logger:   logger,
	}
}

// ResolveMovie resolves metadata for a standalone video file.
func (r *Resolver) ResolveMovie(ctx context.Context, path string) (mapper.Result[mapper.Movie], error) {
	ctx = r.begin(ctx, path)

	record, err := r.videoRecord(ctx, path)
	if err != nil || record == nil {
		return mapper.Result[mapper.Movie]{}, err
	}

	result := mapper.ToMovie(*record)
	refined := r.refine(ctx, result.Item.Title, result.Item.Overview)
	result.Item.Title = refined.Title
	result.Item.Overview = refined.Description
	return result, nil
}

// ResolveEpisode resolves metadata for a video inside a series folder.
func (r *Resolver) ResolveEpisode(ctx context.Context, path string) (mapper.Result[mapper.Episode], error) {
	ctx = r.begin(ctx, path)

	record, err := r.videoRecord(ctx, path)
	if err != nil || record == nil {
		return mapper.Result[mapper.Episode]{}, err
	}

	result := mapper.ToEpisode(*record, r.cfg, videoid.DeriveTitle(path))
	refined := r.refine(ctx, result.Item.Title, result.Item.Overview)
	result.Item.Title = refined.Title
	result.Item.Overview = refined.Description
	return result, nil
}

// ResolveMusicVideo resolves metadata for a music upload.
func (r *Resolver) ResolveMusicVideo(ctx context.Context, path string) (mapper.Result[mapper.MusicVideo], error) {
	ctx = r.begin(ctx, path)

	record, err := r.videoRecord(ctx, path)
	if err != nil || record == nil {
		return mapper.Result[mapper.MusicVideo]{}, err
	}
	return mapper.ToMusicVideo(*record), nil
}

// ResolveSeries resolves channel-level metadata for a series folder. The
// channel identifier comes from the folder name when embedded, otherwise
// from a channel search over the cleaned folder text.
func (r *Resolver) ResolveSeries(ctx context.Context, path string) (mapper.Result[mapper.Series], error) {
	ctx = r.begin(ctx, path)
	logger := logging.WithContext(ctx, r.logger)

	folder := filepath.Base(path)
	channelID := videoid.ExtractChannelID(folder)
	if channelID == "" {
		if !r.cfg.Lookup.EnableTitleLookup {
			logger.Info("series skipped",
				logging.Args(logging.DecisionAttrs("resolve_series", "no_metadata", "no channel id and title lookup disabled")...)...)
			return mapper.Result[mapper.Series]{}, nil
		}
		query := videoid.CleanSearchText(folder)
		found, err := r.channels.SearchChannelFirst(ctx, query)
		if err != nil {
			return mapper.Result[mapper.Series]{}, err
		}
		if found == "" {
			logger.Info("series skipped",
				logging.Args(logging.DecisionAttrs("resolve_series", "no_metadata", "channel search found nothing")...)...)
			return mapper.Result[mapper.Series]{}, nil
		}
		channelID = found
	}

	record, err := r.cache.GetChannelRecord(ctx, channelID, folder)
	if err != nil {
		return mapper.Result[mapper.Series]{}, err
	}
	return mapper.ToSeries(*record, r.cfg, videoid.DeriveTitle(path)), nil
}

// videoRecord locates the video identifier for a path and returns its full
// record. A nil record with nil error means the file could not be identified.
func (r *Resolver) videoRecord(ctx context.Context, path string) (*mapper.RawRecord, error) {
	logger := logging.WithContext(ctx, r.logger)

	id := videoid.Extract(filepath.Base(path))
	if id == "" {
		if !r.cfg.Lookup.EnableTitleLookup {
			logger.Info("resolution skipped",
				logging.Args(logging.DecisionAttrs("resolve", "no_metadata", "no embedded id and title lookup disabled")...)...)
			return nil, nil
		}
		query := videoid.BuildSearchQuery(videoid.DeriveTitle(path), path)
		match, err := r.matcher.BestMatch(ctx, query, r.cfg.Lookup.SearchResultLimit)
		if err != nil {
			return nil, err
		}
		if match == nil {
			logger.Info("resolution skipped",
				logging.Args(logging.DecisionAttrs("resolve", "no_metadata", "search found no candidate")...)...)
			return nil, nil
		}
		id = match.ID
	}

	ctx = services.WithVideoID(ctx, id)
	record, err := r.cache.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	logging.WithContext(ctx, r.logger).Info("record resolved",
		logging.String(logging.FieldVideoID, id))
	return record, nil
}

func (r *Resolver) begin(ctx context.Context, path string) context.Context {
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	return services.WithSource(ctx, path)
}

func (r *Resolver) refine(ctx context.Context, title, overview string) refine.Refinement {
	if r.refiner == nil {
		return refine.Refinement{Title: title, Description: overview}
	}
	return r.refiner.Refine(ctx, title, overview)
}
