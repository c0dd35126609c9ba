// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package engagement tracks what signed-in listeners do with stories.
//
// # Architecture
//
// The [Service] owns the rules (anonymous no-ops, toggle semantics, the
// "current history entry" of a play session). Persistence sits behind the
// [Store] port, with a Postgres implementation for production and an in-memory
// one for tests and database-less runs. Session slots live behind
// [SessionStore] (Redis or memory), leaderboards may be cached through
// [LeaderboardCache], and successful plays are announced through [Publisher].
//
// # Failure Semantics
//
// A failed backend call never changes what the caller observes: toggles
// report the prior state alongside the error, RecordPlay returns an empty
// history ID, and UpdateProgress reports false.
package engagement

import (
	"time"

	"github.com/taibuivan/kahani/internal/catalog"
)

// Collection names a per-user membership set.
type Collection string

const (
	Likes     Collection = "likes"
	Favorites Collection = "favorites"
)

// HistoryEntry is one play of a story by a user.
type HistoryEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"-"`
	StoryID         int64     `json:"story_id"`
	DurationSeconds int       `json:"duration_seconds"`
	ProgressSeconds int       `json:"progress_seconds"`
	Completed       bool      `json:"completed"`
	PlayedAt        time.Time `json:"played_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// State is a user's engagement snapshot.
type State struct {
	Liked     []int64 `json:"liked"`
	Favorites []int64 `json:"favorites"`
}

// RankedStory is one leaderboard row as stored, before the catalog join.
type RankedStory struct {
	StoryID      int64      `json:"story_id"`
	Count        int64      `json:"count"`
	LastPlayedAt *time.Time `json:"last_played_at,omitempty"`
}

// LeaderboardEntry is a ranked story joined with its catalog record.
type LeaderboardEntry struct {
	Rank          int           `json:"rank"`
	Story         catalog.Story `json:"story"`
	Count         int64         `json:"count"`
	LastPlayedAt  *time.Time    `json:"last_played_at,omitempty"`
	Category      string        `json:"category"`
	DurationLabel string        `json:"duration_label"`
}

// EventStoryPlayed is the type of [PlayEvent] messages.
const EventStoryPlayed = "story.played"

// PlayEvent announces a recorded play to downstream consumers.
type PlayEvent struct {
	Type            string    `json:"type"`
	HistoryID       string    `json:"history_id"`
	UserID          string    `json:"user_id"`
	StoryID         int64     `json:"story_id"`
	DurationSeconds int       `json:"duration_seconds"`
	PlayedAt        time.Time `json:"played_at"`
}

const (
	FieldStoryID         = "story_id"
	FieldHistoryID       = "history_id"
	FieldDurationSeconds = "duration_seconds"
	FieldProgressSeconds = "progress_seconds"
	FieldLimit           = "limit"
	FieldBoard           = "board"
)
