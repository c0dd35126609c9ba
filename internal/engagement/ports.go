// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/taibuivan/kahani/internal/catalog"
)

// Store persists likes, favorites, listening history and play counters.
type Store interface {
	IsMember(ctx context.Context, collection Collection, userID string, storyID int64) (bool, error)
	AddMember(ctx context.Context, collection Collection, userID string, storyID int64) error
	RemoveMember(ctx context.Context, collection Collection, userID string, storyID int64) error
	Members(ctx context.Context, collection Collection, userID string) ([]int64, error)

	// RecordPlay inserts entry and increments the story's play counter atomically.
	RecordPlay(ctx context.Context, entry HistoryEntry) error

	// UpdateHistory sets progress on the user's entry; false means no such entry.
	UpdateHistory(ctx context.Context, userID, historyID string, progressSeconds int, completed bool) (bool, error)
	History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error)

	TopPlayed(ctx context.Context, limit int) ([]RankedStory, error)
	TopFavorited(ctx context.Context, limit int) ([]RankedStory, error)
}

// SessionStore holds each user's current history entry.
type SessionStore interface {
	SetCurrent(ctx context.Context, userID, historyID string) error
	// Current returns "" when the user has no active entry.
	Current(ctx context.Context, userID string) (string, error)
}

// LeaderboardCache caches raw leaderboard rows by key.
type LeaderboardCache interface {
	Get(ctx context.Context, key string) ([]RankedStory, bool, error)
	Set(ctx context.Context, key string, rows []RankedStory) error
}

// Publisher announces recorded plays.
type Publisher interface {
	Publish(ctx context.Context, event PlayEvent) error
	Close() error
}

// StoryLookup resolves story IDs against the catalog.
type StoryLookup interface {
	Lookup(ctx context.Context, id int64) (catalog.Story, bool)
}
