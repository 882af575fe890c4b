package refine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ytmeta/internal/config"
	"ytmeta/internal/logging"
	"ytmeta/internal/services/openai"
)

// Cleaner is the chat-completion surface the refiner depends on.
type Cleaner interface {
	CleanupMetadata(ctx context.Context, title, description string, descriptionCleanup bool) (openai.Cleanup, error)
}

// Refinement is the outcome of a refinement attempt. Refined is false when
// the step was skipped or failed; Title and Description then carry the
// original values untouched.
type Refinement struct {
	Title       string
	Description string
	Refined     bool
}

// Option configures a Refiner.
type Option func(*Refiner)

// WithClient replaces the backend client (used by tests).
func WithClient(client Cleaner) Option {
	return func(r *Refiner) {
		if client != nil {
			r.client = client
		}
	}
}

// Refiner runs optional AI cleanup over mapped titles and descriptions. It
// is the single fail-soft boundary in the pipeline: whatever goes wrong in
// here, resolution continues with the unrefined values.
type Refiner struct {
	cfg    *config.Config
	client Cleaner
	logger *slog.Logger
}

// NewRefiner constructs a Refiner from configuration. The backend client is
// only built when the feature is active.
func NewRefiner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Refiner {
	if logger == nil {
		logger = logging.NewNop()
	}
	refiner := &Refiner{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(refiner)
	}
	if refiner.client == nil && refiner.enabled() {
		refiner.client = openai.NewClient(cfg.AI.APIKey,
			openai.WithBaseURL(cfg.AI.BaseURL),
			openai.WithModel(cfg.AI.Model),
			openai.WithTimeout(time.Duration(cfg.AI.TimeoutSeconds)*time.Second),
		)
	}
	return refiner
}

func (r *Refiner) enabled() bool {
	return r.cfg != nil &&
		r.cfg.AI.Enabled &&
		strings.TrimSpace(r.cfg.AI.APIKey) != "" &&
		strings.TrimSpace(r.cfg.AI.Model) != ""
}

// Refine attempts AI cleanup of a title and description. It never returns an
// error; failures log a warning and leave the inputs unchanged.
func (r *Refiner) Refine(ctx context.Context, title, description string) Refinement {
	unchanged := Refinement{Title: title, Description: description}
	if !r.enabled() || r.client == nil {
		return unchanged
	}

	cleanup, err := r.client.CleanupMetadata(ctx, title, description, r.cfg.AI.DescriptionCleanup)
	if err != nil {
		r.logger.Warn("metadata refinement skipped",
			logging.String(logging.FieldEventType, "refine_failed"),
			logging.Error(err))
		return unchanged
	}

	refined := unchanged
	refined.Refined = true
	if cleanup.Title != "" {
		refined.Title = cleanup.Title
	}
	if r.cfg.AI.DescriptionCleanup && cleanup.Description != "" {
		refined.Description = cleanup.Description
	}
	return refined
}
