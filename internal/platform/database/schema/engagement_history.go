// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ListeningHistoryTable represents the 'engagement.listening_history' table
type ListeningHistoryTable struct {
	Table           string
	ID              string
	UserID          string
	StoryID         string
	DurationSeconds string
	ProgressSeconds string
	Completed       string
	PlayedAt        string
	UpdatedAt       string
}

// ListeningHistory is the schema definition for engagement.listening_history
var ListeningHistory = ListeningHistoryTable{
	Table:           "engagement.listening_history",
	ID:              "id",
	UserID:          "userid",
	StoryID:         "storyid",
	DurationSeconds: "durationseconds",
	ProgressSeconds: "progressseconds",
	Completed:       "completed",
	PlayedAt:        "playedat",
	UpdatedAt:       "updatedat",
}

func (t ListeningHistoryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.StoryID, t.DurationSeconds, t.ProgressSeconds, t.Completed, t.PlayedAt, t.UpdatedAt}
}

// StoryPlayCountTable represents the 'engagement.story_play_count' table
type StoryPlayCountTable struct {
	Table        string
	StoryID      string
	PlayCount    string
	LastPlayedAt string
}

// StoryPlayCount is the schema definition for engagement.story_play_count
var StoryPlayCount = StoryPlayCountTable{
	Table:        "engagement.story_play_count",
	StoryID:      "storyid",
	PlayCount:    "playcount",
	LastPlayedAt: "lastplayedat",
}

func (t StoryPlayCountTable) Columns() []string {
	return []string{t.StoryID, t.PlayCount, t.LastPlayedAt}
}
