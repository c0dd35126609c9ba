// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/engagement"
	"github.com/taibuivan/kahani/internal/platform/apperr"
)

var (
	sleepStory   = catalog.Story{Title: "10 Minute Sleep Story", AudioLink: "https://cdn.example.com/a.mp3", Keywords: []string{"sleep", "Kids"}}
	morningStory = catalog.Story{Title: "Morning Focus", AudioLink: "https://cdn.example.com/m.mp3"}
	magicStory   = catalog.Story{Title: "जादुई पेड़", AudioLink: "https://cdn.example.com/jadui.mp3", Keywords: []string{"Magic"}}
)

func init() {
	for _, story := range []*catalog.Story{&sleepStory, &morningStory, &magicStory} {
		story.ID = catalog.DeriveID(story.Title, story.AudioLink)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testCatalog() *catalog.Store {
	return catalog.NewStore(catalog.StaticSource{sleepStory, morningStory, magicStory}, discardLogger())
}

type fixture struct {
	service  *engagement.Service
	store    *engagement.MemoryStore
	sessions *engagement.MemorySessions
}

func newFixture(options ...engagement.Option) fixture {
	store := engagement.NewMemoryStore()
	sessions := engagement.NewMemorySessions()

	sequence := 0
	options = append([]engagement.Option{
		engagement.WithIDGenerator(func() string {
			sequence++
			return fmt.Sprintf("history-%d", sequence)
		}),
	}, options...)

	return fixture{
		service:  engagement.NewService(store, sessions, testCatalog(), discardLogger(), options...),
		store:    store,
		sessions: sessions,
	}
}

/*
TestToggle_Anonymous never stores anything for callers without an identity.
*/
func TestToggle_Anonymous(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	liked, err := f.service.ToggleLike(ctx, "", sleepStory.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	favorited, err := f.service.ToggleFavorite(ctx, "", sleepStory.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	state, err := f.service.State(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, state.Liked)
	assert.Empty(t, state.Favorites)
}

/*
TestToggle_Flips alternates membership and keeps likes and favorites apart.
*/
func TestToggle_Flips(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	liked, err := f.service.ToggleLike(ctx, "user-1", sleepStory.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	state, err := f.service.State(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []int64{sleepStory.ID}, state.Liked)
	assert.Empty(t, state.Favorites)

	liked, err = f.service.ToggleLike(ctx, "user-1", sleepStory.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	favorited, err := f.service.ToggleFavorite(ctx, "user-1", magicStory.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	state, err = f.service.State(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, state.Liked)
	assert.Equal(t, []int64{magicStory.ID}, state.Favorites)

	other, err := f.service.State(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other.Favorites)
}

/*
TestToggle_UnknownStory rejects IDs that are not in the catalog.
*/
func TestToggle_UnknownStory(t *testing.T) {
	f := newFixture()

	liked, err := f.service.ToggleLike(context.Background(), "user-1", 1)
	assert.False(t, liked)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestRecordPlay_CreatesEntryAndCounts appends history and bumps the counter.
*/
func TestRecordPlay_CreatesEntryAndCounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	historyID, err := f.service.RecordPlay(ctx, "user-1", sleepStory.ID, 600)
	require.NoError(t, err)
	assert.Equal(t, "history-1", historyID)

	history, err := f.service.History(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, sleepStory.ID, history[0].StoryID)
	assert.Equal(t, 600, history[0].DurationSeconds)
	assert.Zero(t, history[0].ProgressSeconds)
	assert.False(t, history[0].Completed)

	current, err := f.sessions.Current(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "history-1", current)

	top, err := f.store.TopPlayed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].Count)
}

/*
TestRecordPlay_Rejections covers anonymous callers, bad durations and unknown stories.
*/
func TestRecordPlay_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	historyID, err := f.service.RecordPlay(ctx, "", sleepStory.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, historyID)

	historyID, err = f.service.RecordPlay(ctx, "user-1", sleepStory.ID, -1)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Empty(t, historyID)

	historyID, err = f.service.RecordPlay(ctx, "user-1", 7, 10)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Empty(t, historyID)

	history, err := f.service.History(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

/*
TestUpdateProgress_OnlyCurrentEntry updates the latest play and ignores older ones.
*/
func TestUpdateProgress_OnlyCurrentEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.RecordPlay(ctx, "user-1", sleepStory.ID, 600)
	require.NoError(t, err)
	second, err := f.service.RecordPlay(ctx, "user-1", magicStory.ID, 300)
	require.NoError(t, err)

	updated, err := f.service.UpdateProgress(ctx, "user-1", first, 100, false)
	require.NoError(t, err)
	assert.False(t, updated, "older entries are not the current one")

	updated, err = f.service.UpdateProgress(ctx, "user-1", "", 300, true)
	require.NoError(t, err)
	assert.True(t, updated)

	history, err := f.service.History(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, second, history[0].ID)
	assert.Equal(t, 300, history[0].ProgressSeconds)
	assert.True(t, history[0].Completed)

	assert.Equal(t, first, history[1].ID)
	assert.Zero(t, history[1].ProgressSeconds)
}

/*
TestUpdateProgress_NoSession is a no-op without a recorded play.
*/
func TestUpdateProgress_NoSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	updated, err := f.service.UpdateProgress(ctx, "user-1", "", 10, false)
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = f.service.UpdateProgress(ctx, "", "", 10, false)
	require.NoError(t, err)
	assert.False(t, updated)

	_, err = f.service.UpdateProgress(ctx, "user-1", "", -5, false)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestUpdateProgress_SessionsArePerUser keeps one user's slot away from another.
*/
func TestUpdateProgress_SessionsArePerUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	historyID, err := f.service.RecordPlay(ctx, "user-1", sleepStory.ID, 600)
	require.NoError(t, err)

	updated, err := f.service.UpdateProgress(ctx, "user-2", historyID, 10, false)
	require.NoError(t, err)
	assert.False(t, updated)
}

/*
TestLeaderboards ranks by count, joins the catalog, and labels entries.
*/
func TestLeaderboards(t *testing.T) {
	clock := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(engagement.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	ctx := context.Background()

	for _, storyID := range []int64{morningStory.ID, sleepStory.ID, sleepStory.ID, magicStory.ID} {
		_, err := f.service.RecordPlay(ctx, "user-1", storyID, 60)
		require.NoError(t, err)
	}

	// A play of a story that has since left the catalog.
	require.NoError(t, f.store.RecordPlay(ctx, engagement.HistoryEntry{ID: "orphan", UserID: "user-9", StoryID: 99, PlayedAt: clock}))

	played, err := f.service.MostPlayed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, played, 3)

	assert.Equal(t, 1, played[0].Rank)
	assert.Equal(t, sleepStory.ID, played[0].Story.ID)
	assert.Equal(t, int64(2), played[0].Count)
	assert.Equal(t, "Sleep", played[0].Category)
	assert.Equal(t, "10:00", played[0].DurationLabel)

	// Equal counts fall back to the most recent play.
	assert.Equal(t, magicStory.ID, played[1].Story.ID)
	assert.Equal(t, morningStory.ID, played[2].Story.ID)
	assert.Equal(t, "Morning", played[2].Category)
	assert.Equal(t, 3, played[2].Rank)

	for _, userID := range []string{"user-1", "user-2"} {
		_, err := f.service.ToggleFavorite(ctx, userID, magicStory.ID)
		require.NoError(t, err)
	}
	_, err = f.service.ToggleFavorite(ctx, "user-3", morningStory.ID)
	require.NoError(t, err)

	favorited, err := f.service.MostFavorited(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.Equal(t, magicStory.ID, favorited[0].Story.ID)
	assert.Equal(t, int64(2), favorited[0].Count)
	assert.Equal(t, "Magic", favorited[0].Category)
}
