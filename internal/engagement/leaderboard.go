// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/platform/constants"
)

// Board names a leaderboard.
type Board string

const (
	BoardMostPlayed    Board = "most-played"
	BoardMostFavorited Board = "most-favorited"
)

// MostPlayed ranks stories by play count, then by most recent play.
func (service *Service) MostPlayed(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	return service.Leaderboard(ctx, BoardMostPlayed, limit)
}

// MostFavorited ranks stories by how many users favorited them.
func (service *Service) MostFavorited(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	return service.Leaderboard(ctx, BoardMostFavorited, limit)
}

// Leaderboard ranks stories on board, joined with their catalog records.
// Stories missing from the catalog are skipped without consuming a rank.
func (service *Service) Leaderboard(ctx context.Context, board Board, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = constants.DefaultLeaderboardLimit
	}

	rows, err := service.rankedRows(ctx, board, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		story, ok := service.stories.Lookup(ctx, row.StoryID)
		if !ok {
			service.logger.DebugContext(ctx, "leaderboard_story_missing", slog.Int64("story_id", row.StoryID))
			continue
		}

		entries = append(entries, LeaderboardEntry{
			Rank:          len(entries) + 1,
			Story:         story,
			Count:         row.Count,
			LastPlayedAt:  row.LastPlayedAt,
			Category:      Category(story),
			DurationLabel: DurationLabel(story.Title),
		})
	}

	return entries, nil
}

func (service *Service) rankedRows(ctx context.Context, board Board, limit int) ([]RankedStory, error) {
	key := fmt.Sprintf("%s:%d", board, limit)

	rows, hit, err := service.cache.Get(ctx, key)
	if err != nil {
		service.logger.WarnContext(ctx, "leaderboard_cache_read_failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if hit {
		return rows, nil
	}

	switch board {
	case BoardMostPlayed:
		rows, err = service.store.TopPlayed(ctx, limit)
	case BoardMostFavorited:
		rows, err = service.store.TopFavorited(ctx, limit)
	default:
		return nil, fmt.Errorf("unknown leaderboard %q", board)
	}
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(ctx, key, rows); err != nil {
		service.logger.WarnContext(ctx, "leaderboard_cache_write_failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return rows, nil
}

// # Display Labels

// Category is the first keyword with its first letter upper-cased, or a
// label guessed from the title.
func Category(story catalog.Story) string {
	if len(story.Keywords) > 0 && story.Keywords[0] != "" {
		keyword := story.Keywords[0]
		_, size := utf8.DecodeRuneInString(keyword)
		return cases.Upper(language.Und).String(keyword[:size]) + keyword[size:]
	}

	title := strings.ToLower(story.Title)
	switch {
	case strings.Contains(title, "sleep"):
		return "Sleep Stories"
	case strings.Contains(title, "morning"):
		return "Morning"
	case strings.Contains(title, "anxiety"):
		return "Anxiety"
	default:
		return "Story"
	}
}

// DurationLabel renders the title's "<N> minute" marker as "N:00".
func DurationLabel(title string) string {
	if minutes, ok := catalog.DurationMinutes(title); ok {
		return fmt.Sprintf("%d:00", minutes)
	}
	return fmt.Sprintf("%d:00", constants.DefaultSEODurationMinutes)
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]RankedStory, bool, error) { return nil, false, nil }
func (nopCache) Set(context.Context, string, []RankedStory) error         { return nil }
