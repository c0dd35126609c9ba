// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kahani/internal/platform/database/schema"
	"github.com/taibuivan/kahani/internal/platform/dberr"
)

// PostgresStore implements [Store] on the engagement schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func membershipTable(collection Collection) (schema.StoryLikeTable, error) {
	switch collection {
	case Likes:
		return schema.StoryLike, nil
	case Favorites:
		return schema.StoryFavorite, nil
	default:
		return schema.StoryLikeTable{}, fmt.Errorf("unknown collection %q", collection)
	}
}

// # Membership

func (repository *PostgresStore) IsMember(ctx context.Context, collection Collection, userID string, storyID int64) (bool, error) {
	table, err := membershipTable(collection)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		table.Table, table.UserID, table.StoryID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, userID, storyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_is_member_failed: %w", err)
	}
	return exists, nil
}

func (repository *PostgresStore) AddMember(ctx context.Context, collection Collection, userID string, storyID int64) error {
	table, err := membershipTable(collection)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		table.Table, table.UserID, table.StoryID, table.CreatedAt,
		table.UserID, table.StoryID,
	)

	if _, err := repository.pool.Exec(ctx, query, userID, storyID); err != nil {
		return fmt.Errorf("postgres_add_member_failed: %w", err)
	}
	return nil
}

func (repository *PostgresStore) RemoveMember(ctx context.Context, collection Collection, userID string, storyID int64) error {
	table, err := membershipTable(collection)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.UserID, table.StoryID)

	if _, err := repository.pool.Exec(ctx, query, userID, storyID); err != nil {
		return fmt.Errorf("postgres_remove_member_failed: %w", err)
	}
	return nil
}

func (repository *PostgresStore) Members(ctx context.Context, collection Collection, userID string) ([]int64, error) {
	table, err := membershipTable(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s ASC`,
		table.StoryID, table.Table, table.UserID, table.CreatedAt, table.StoryID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_members_failed: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("postgres_members_scan_failed: %w", err)
	}
	return ids, nil
}

// # Listening History

// RecordPlay inserts the history row and bumps the play counter in one transaction.
func (repository *PostgresStore) RecordPlay(ctx context.Context, entry HistoryEntry) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx) //nolint:errcheck

	history := schema.ListeningHistory
	insertHistory := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, 0, FALSE, $5, $5)
	`,
		history.Table, history.ID, history.UserID, history.StoryID, history.DurationSeconds,
		history.ProgressSeconds, history.Completed, history.PlayedAt, history.UpdatedAt,
	)

	if _, err := transaction.Exec(ctx, insertHistory, entry.ID, entry.UserID, entry.StoryID, entry.DurationSeconds, entry.PlayedAt); err != nil {
		return dberr.Wrap(err, "Listening history")
	}

	counter := schema.StoryPlayCount
	upsertCount := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, 1, $2)
		ON CONFLICT (%s) DO UPDATE
		SET %s = %s + 1, %s = GREATEST(%s, EXCLUDED.%s)
	`,
		counter.Table, counter.StoryID, counter.PlayCount, counter.LastPlayedAt,
		counter.StoryID,
		counter.PlayCount, counter.PlayCount,
		counter.LastPlayedAt, counter.LastPlayedAt, counter.LastPlayedAt,
	)

	if _, err := transaction.Exec(ctx, upsertCount, entry.StoryID, entry.PlayedAt); err != nil {
		return fmt.Errorf("postgres_play_count_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_commit_failed: %w", err)
	}
	return nil
}

func (repository *PostgresStore) UpdateHistory(ctx context.Context, userID, historyID string, progressSeconds int, completed bool) (bool, error) {
	history := schema.ListeningHistory
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = $2
	`,
		history.Table,
		history.ProgressSeconds, history.Completed, history.UpdatedAt,
		history.ID, history.UserID,
	)

	command, err := repository.pool.Exec(ctx, query, historyID, userID, progressSeconds, completed)
	if err != nil {
		return false, fmt.Errorf("postgres_update_history_failed: %w", err)
	}
	return command.RowsAffected() > 0, nil
}

func (repository *PostgresStore) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	history := schema.ListeningHistory
	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2
	`,
		history.ID, history.UserID, history.StoryID, history.DurationSeconds,
		history.ProgressSeconds, history.Completed, history.PlayedAt, history.UpdatedAt,
		history.Table, history.UserID, history.PlayedAt,
	)

	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	rows, err := repository.pool.Query(ctx, query, userID, limitArg)
	if err != nil {
		return nil, fmt.Errorf("postgres_history_failed: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.StoryID, &entry.DurationSeconds,
			&entry.ProgressSeconds, &entry.Completed, &entry.PlayedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_history_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// # Leaderboards

func (repository *PostgresStore) TopPlayed(ctx context.Context, limit int) ([]RankedStory, error) {
	counter := schema.StoryPlayCount
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC, %s ASC
		LIMIT $1
	`,
		counter.StoryID, counter.PlayCount, counter.LastPlayedAt,
		counter.Table,
		counter.PlayCount, counter.LastPlayedAt, counter.StoryID,
	)

	rows, err := repository.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_top_played_failed: %w", err)
	}
	defer rows.Close()

	ranked := make([]RankedStory, 0, limit)
	for rows.Next() {
		var row RankedStory
		if err := rows.Scan(&row.StoryID, &row.Count, &row.LastPlayedAt); err != nil {
			return nil, fmt.Errorf("postgres_top_played_scan_failed: %w", err)
		}
		ranked = append(ranked, row)
	}
	return ranked, rows.Err()
}

func (repository *PostgresStore) TopFavorited(ctx context.Context, limit int) ([]RankedStory, error) {
	favorite := schema.StoryFavorite
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS total
		FROM %s
		GROUP BY %s
		ORDER BY total DESC, %s ASC
		LIMIT $1
	`,
		favorite.StoryID, favorite.Table, favorite.StoryID, favorite.StoryID,
	)

	rows, err := repository.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_top_favorited_failed: %w", err)
	}
	defer rows.Close()

	ranked := make([]RankedStory, 0, limit)
	for rows.Next() {
		var row RankedStory
		if err := rows.Scan(&row.StoryID, &row.Count); err != nil {
			return nil, fmt.Errorf("postgres_top_favorited_scan_failed: %w", err)
		}
		ranked = append(ranked, row)
	}
	return ranked, rows.Err()
}
