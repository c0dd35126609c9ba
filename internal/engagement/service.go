// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/kahani/internal/platform/apperr"
	"github.com/taibuivan/kahani/internal/platform/validate"
	"github.com/taibuivan/kahani/pkg/uuidv7"
)

// Service implements the engagement tracking contract.
type Service struct {
	store     Store
	sessions  SessionStore
	stories   StoryLookup
	cache     LeaderboardCache
	publisher Publisher
	logger    *slog.Logger

	now   func() time.Time
	newID func() string
}

// Option customizes a [Service].
type Option func(*Service)

// WithLeaderboardCache caches leaderboard rows.
func WithLeaderboardCache(cache LeaderboardCache) Option {
	return func(service *Service) { service.cache = cache }
}

// WithPublisher announces recorded plays.
func WithPublisher(publisher Publisher) Option {
	return func(service *Service) { service.publisher = publisher }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// WithIDGenerator overrides history ID generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(service *Service) { service.newID = newID }
}

// NewService creates a new engagement Service.
func NewService(store Store, sessions SessionStore, stories StoryLookup, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		store:     store,
		sessions:  sessions,
		stories:   stories,
		cache:     nopCache{},
		publisher: NopPublisher{},
		logger:    logger,
		now:       time.Now,
		newID:     uuidv7.New,
	}

	for _, option := range options {
		option(service)
	}

	return service
}

// # Likes & Favorites

// ToggleLike flips the user's like on storyID and returns the new state.
// Anonymous callers get false and nothing is stored.
func (service *Service) ToggleLike(ctx context.Context, userID string, storyID int64) (bool, error) {
	return service.toggle(ctx, Likes, userID, storyID)
}

// ToggleFavorite flips the user's favorite on storyID and returns the new state.
func (service *Service) ToggleFavorite(ctx context.Context, userID string, storyID int64) (bool, error) {
	return service.toggle(ctx, Favorites, userID, storyID)
}

func (service *Service) toggle(ctx context.Context, collection Collection, userID string, storyID int64) (bool, error) {
	if userID == "" {
		return false, nil
	}

	if _, ok := service.stories.Lookup(ctx, storyID); !ok {
		return false, apperr.NotFound("Story")
	}

	member, err := service.store.IsMember(ctx, collection, userID, storyID)
	if err != nil {
		service.logger.ErrorContext(ctx, "engagement_toggle_read_failed",
			slog.String("collection", string(collection)),
			slog.Int64("story_id", storyID),
			slog.String("error", err.Error()),
		)
		return false, err
	}

	if member {
		err = service.store.RemoveMember(ctx, collection, userID, storyID)
	} else {
		err = service.store.AddMember(ctx, collection, userID, storyID)
	}
	if err != nil {
		service.logger.ErrorContext(ctx, "engagement_toggle_write_failed",
			slog.String("collection", string(collection)),
			slog.Int64("story_id", storyID),
			slog.String("error", err.Error()),
		)
		return member, err
	}

	service.logger.InfoContext(ctx, "engagement_toggled",
		slog.String("collection", string(collection)),
		slog.Int64("story_id", storyID),
		slog.Bool("active", !member),
	)

	return !member, nil
}

// State returns the user's liked and favorite story IDs, fetched concurrently.
func (service *Service) State(ctx context.Context, userID string) (State, error) {
	state := State{Liked: []int64{}, Favorites: []int64{}}
	if userID == "" {
		return state, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		liked, err := service.store.Members(groupCtx, Likes, userID)
		if err == nil && liked != nil {
			state.Liked = liked
		}
		return err
	})

	group.Go(func() error {
		favorites, err := service.store.Members(groupCtx, Favorites, userID)
		if err == nil && favorites != nil {
			state.Favorites = favorites
		}
		return err
	})

	if err := group.Wait(); err != nil {
		return State{Liked: []int64{}, Favorites: []int64{}}, err
	}

	return state, nil
}

// # Listening History

// RecordPlay appends a history entry (progress 0, not completed), bumps the
// story's play counter, and makes the entry the user's current one.
//
// # Returns
//   - The new history ID once the entry is stored, even if the current-entry
//     slot could not be updated; progress updates then miss this play.
//   - "" for anonymous callers and when the entry is not stored.
func (service *Service) RecordPlay(ctx context.Context, userID string, storyID int64, durationSeconds int) (string, error) {
	if userID == "" {
		return "", nil
	}

	if err := (&validate.Validator{}).Min(FieldDurationSeconds, durationSeconds, 0).Err(); err != nil {
		return "", err
	}

	if _, ok := service.stories.Lookup(ctx, storyID); !ok {
		return "", apperr.NotFound("Story")
	}

	playedAt := service.now().UTC()
	entry := HistoryEntry{
		ID:              service.newID(),
		UserID:          userID,
		StoryID:         storyID,
		DurationSeconds: durationSeconds,
		PlayedAt:        playedAt,
		UpdatedAt:       playedAt,
	}

	if err := service.store.RecordPlay(ctx, entry); err != nil {
		service.logger.ErrorContext(ctx, "play_record_failed",
			slog.Int64("story_id", storyID),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	if err := service.sessions.SetCurrent(ctx, userID, entry.ID); err != nil {
		service.logger.WarnContext(ctx, "play_session_update_failed",
			slog.String("history_id", entry.ID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.InfoContext(ctx, "play_recorded",
		slog.String("history_id", entry.ID),
		slog.Int64("story_id", storyID),
		slog.Int("duration_seconds", durationSeconds),
	)

	service.publish(ctx, PlayEvent{
		Type:            EventStoryPlayed,
		HistoryID:       entry.ID,
		UserID:          userID,
		StoryID:         storyID,
		DurationSeconds: durationSeconds,
		PlayedAt:        playedAt,
	})

	return entry.ID, nil
}

// publish never fails the caller; the play is already durable.
func (service *Service) publish(ctx context.Context, event PlayEvent) {
	if err := service.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		service.logger.WarnContext(ctx, "play_event_publish_failed",
			slog.String("history_id", event.HistoryID),
			slog.String("error", err.Error()),
		)
	}
}

// UpdateProgress records playback progress on the user's current history entry.
//
// historyID is optional; when given it must name the current entry. Calls
// without a current entry, or naming an older one, change nothing and
// report false.
func (service *Service) UpdateProgress(ctx context.Context, userID, historyID string, progressSeconds int, completed bool) (bool, error) {
	if userID == "" {
		return false, nil
	}

	if err := (&validate.Validator{}).Min(FieldProgressSeconds, progressSeconds, 0).Err(); err != nil {
		return false, err
	}

	current, err := service.sessions.Current(ctx, userID)
	if err != nil {
		service.logger.ErrorContext(ctx, "play_session_read_failed", slog.String("error", err.Error()))
		return false, err
	}

	if current == "" || (historyID != "" && historyID != current) {
		return false, nil
	}

	updated, err := service.store.UpdateHistory(ctx, userID, current, progressSeconds, completed)
	if err != nil {
		service.logger.ErrorContext(ctx, "progress_update_failed",
			slog.String("history_id", current),
			slog.String("error", err.Error()),
		)
		return false, err
	}

	if updated {
		service.logger.DebugContext(ctx, "progress_updated",
			slog.String("history_id", current),
			slog.Int("progress_seconds", progressSeconds),
			slog.Bool("completed", completed),
		)
	}

	return updated, nil
}

// CurrentHistoryID returns the user's current history entry, or "".
func (service *Service) CurrentHistoryID(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	return service.sessions.Current(ctx, userID)
}

// History returns the user's most recent plays, newest first.
func (service *Service) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	if userID == "" {
		return []HistoryEntry{}, nil
	}

	entries, err := service.store.History(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}
