// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

import (
	"context"
	"sort"
	"sync"
	"time"
)

type membershipKey struct {
	collection Collection
	userID     string
}

type playCount struct {
	count        int64
	lastPlayedAt time.Time
}

// MemoryStore is an in-process [Store] for tests and database-less runs.
type MemoryStore struct {
	mu      sync.RWMutex
	members map[membershipKey]map[int64]time.Time
	history []HistoryEntry
	plays   map[int64]*playCount
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members: make(map[membershipKey]map[int64]time.Time),
		plays:   make(map[int64]*playCount),
		now:     time.Now,
	}
}

func (store *MemoryStore) IsMember(_ context.Context, collection Collection, userID string, storyID int64) (bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	_, ok := store.members[membershipKey{collection, userID}][storyID]
	return ok, nil
}

func (store *MemoryStore) AddMember(_ context.Context, collection Collection, userID string, storyID int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := membershipKey{collection, userID}
	if store.members[key] == nil {
		store.members[key] = make(map[int64]time.Time)
	}
	if _, ok := store.members[key][storyID]; !ok {
		store.members[key][storyID] = store.now()
	}
	return nil
}

func (store *MemoryStore) RemoveMember(_ context.Context, collection Collection, userID string, storyID int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.members[membershipKey{collection, userID}], storyID)
	return nil
}

// Members returns story IDs newest first.
func (store *MemoryStore) Members(_ context.Context, collection Collection, userID string) ([]int64, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	set := store.members[membershipKey{collection, userID}]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		if !set[ids[i]].Equal(set[ids[j]]) {
			return set[ids[i]].After(set[ids[j]])
		}
		return ids[i] < ids[j]
	})
	return ids, nil
}

func (store *MemoryStore) RecordPlay(_ context.Context, entry HistoryEntry) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.history = append(store.history, entry)

	counter := store.plays[entry.StoryID]
	if counter == nil {
		counter = &playCount{}
		store.plays[entry.StoryID] = counter
	}
	counter.count++
	counter.lastPlayedAt = entry.PlayedAt
	return nil
}

func (store *MemoryStore) UpdateHistory(_ context.Context, userID, historyID string, progressSeconds int, completed bool) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i := range store.history {
		entry := &store.history[i]
		if entry.ID == historyID && entry.UserID == userID {
			entry.ProgressSeconds = progressSeconds
			entry.Completed = completed
			entry.UpdatedAt = store.now().UTC()
			return true, nil
		}
	}
	return false, nil
}

// History returns the user's entries newest first; limit <= 0 means all.
func (store *MemoryStore) History(_ context.Context, userID string, limit int) ([]HistoryEntry, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	entries := make([]HistoryEntry, 0)
	for i := len(store.history) - 1; i >= 0; i-- {
		if store.history[i].UserID != userID {
			continue
		}
		entries = append(entries, store.history[i])
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (store *MemoryStore) TopPlayed(_ context.Context, limit int) ([]RankedStory, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	rows := make([]RankedStory, 0, len(store.plays))
	for storyID, counter := range store.plays {
		lastPlayedAt := counter.lastPlayedAt
		rows = append(rows, RankedStory{StoryID: storyID, Count: counter.count, LastPlayedAt: &lastPlayedAt})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if !rows[i].LastPlayedAt.Equal(*rows[j].LastPlayedAt) {
			return rows[i].LastPlayedAt.After(*rows[j].LastPlayedAt)
		}
		return rows[i].StoryID < rows[j].StoryID
	})
	return truncate(rows, limit), nil
}

func (store *MemoryStore) TopFavorited(_ context.Context, limit int) ([]RankedStory, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	counts := make(map[int64]int64)
	for key, set := range store.members {
		if key.collection != Favorites {
			continue
		}
		for storyID := range set {
			counts[storyID]++
		}
	}

	rows := make([]RankedStory, 0, len(counts))
	for storyID, count := range counts {
		rows = append(rows, RankedStory{StoryID: storyID, Count: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].StoryID < rows[j].StoryID
	})
	return truncate(rows, limit), nil
}

func truncate(rows []RankedStory, limit int) []RankedStory {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// # Sessions

// MemorySessions is an in-process [SessionStore].
type MemorySessions struct {
	mu      sync.Mutex
	current map[string]string
}

// NewMemorySessions creates an empty MemorySessions.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{current: make(map[string]string)}
}

func (sessions *MemorySessions) SetCurrent(_ context.Context, userID, historyID string) error {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()

	sessions.current[userID] = historyID
	return nil
}

func (sessions *MemorySessions) Current(_ context.Context, userID string) (string, error) {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()

	return sessions.current[userID], nil
}
