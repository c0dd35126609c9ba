// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the engagement tables and columns used by hand-written SQL.
package schema

// StoryLikeTable represents the 'engagement.story_like' table
type StoryLikeTable struct {
	Table     string
	UserID    string
	StoryID   string
	CreatedAt string
}

// StoryLike is the schema definition for engagement.story_like
var StoryLike = StoryLikeTable{
	Table:     "engagement.story_like",
	UserID:    "userid",
	StoryID:   "storyid",
	CreatedAt: "createdat",
}

func (t StoryLikeTable) Columns() []string {
	return []string{t.UserID, t.StoryID, t.CreatedAt}
}

// StoryFavorite is the schema definition for engagement.story_favorite.
// It shares the membership layout of [StoryLikeTable].
var StoryFavorite = StoryLikeTable{
	Table:     "engagement.story_favorite",
	UserID:    "userid",
	StoryID:   "storyid",
	CreatedAt: "createdat",
}
