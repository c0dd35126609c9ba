// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/kahani/internal/platform/apperr"
)

// loadTimeout bounds the one-time catalog load.
const loadTimeout = 30 * time.Second

// Store is the in-memory catalog.
//
// # Lifecycle
//
// The source is read lazily on first use and exactly once per Store. A failed
// load is logged and leaves an empty catalog; it is not retried. Create a new
// Store to reload.
//
// # Concurrency
//
// Store is safe for concurrent use. Returned slices are shared and must be
// treated as read-only.
type Store struct {
	source Source
	logger *slog.Logger

	once    sync.Once
	stories []Story
	byID    map[int64]int
}

// NewStore creates a Store backed by source.
func NewStore(source Source, logger *slog.Logger) *Store {
	return &Store{source: source, logger: logger}
}

func (store *Store) load(ctx context.Context) {
	store.once.Do(func() {
		// The first caller's cancellation must not poison the cache for everyone else.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		startTime := time.Now()
		stories, err := store.source.Load(loadCtx)
		if err != nil {
			store.logger.ErrorContext(ctx, "catalog_load_failed", slog.String("error", err.Error()))
			stories = nil
		}
		if stories == nil {
			stories = []Story{}
		}

		index := make(map[int64]int, len(stories))
		for position, story := range stories {
			if _, exists := index[story.ID]; !exists {
				index[story.ID] = position
			}
		}

		store.stories = stories
		store.byID = index

		store.logger.InfoContext(ctx, "catalog_loaded",
			slog.Int("stories", len(stories)),
			slog.Int("distinct_ids", len(index)),
			slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		)
	})
}

// All returns every story in source order.
func (store *Store) All(ctx context.Context) []Story {
	store.load(ctx)
	return store.stories
}

// ByID returns the first story with the given ID, or a NOT_FOUND error.
func (store *Store) ByID(ctx context.Context, id int64) (Story, error) {
	store.load(ctx)

	position, ok := store.byID[id]
	if !ok {
		return Story{}, apperr.NotFound("Story")
	}
	return store.stories[position], nil
}

// Lookup is the non-error form of [Store.ByID].
func (store *Store) Lookup(ctx context.Context, id int64) (Story, bool) {
	story, err := store.ByID(ctx, id)
	return story, err == nil
}

// Search returns the stories matching query; see [Search].
func (store *Store) Search(ctx context.Context, query string) []Story {
	return Search(store.All(ctx), query)
}

// Related returns up to limit stories related to reference; see [Related].
func (store *Store) Related(ctx context.Context, reference Story, limit int) []Story {
	return Related(store.All(ctx), reference, limit)
}
