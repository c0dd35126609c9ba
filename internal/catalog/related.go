// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"sort"
	"strings"

	"github.com/taibuivan/kahani/pkg/slice"
)

// Related ranks catalog stories by keyword overlap with reference.
//
// # Algorithm
//  1. Drop every story with the reference's ID.
//  2. Without reference keywords, return the first limit candidates.
//  3. Score each candidate by how many of its keywords equal (case-insensitively)
//     some reference keyword.
//  4. Stable sort by score, highest first, so ties keep catalog order.
//  5. Take the top limit and backfill from unused candidates in catalog order.
//
// The result length is min(limit, number of candidates); limit <= 0 yields none.
func Related(stories []Story, reference Story, limit int) []Story {
	if limit <= 0 {
		return []Story{}
	}

	candidates := slice.Filter(stories, func(story Story) bool {
		return story.ID != reference.ID
	})

	if !reference.HasKeywords() {
		return slice.Take(candidates, limit)
	}

	wanted := make(map[string]struct{}, len(reference.Keywords))
	for _, keyword := range reference.Keywords {
		wanted[strings.ToLower(keyword)] = struct{}{}
	}

	type scored struct {
		position int
		score    int
	}

	ranked := make([]scored, len(candidates))
	for position, candidate := range candidates {
		score := 0
		for _, keyword := range candidate.Keywords {
			if _, ok := wanted[strings.ToLower(keyword)]; ok {
				score++
			}
		}
		ranked[position] = scored{position: position, score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	result := make([]Story, 0, min(limit, len(candidates)))
	used := make([]bool, len(candidates))
	for _, entry := range slice.Take(ranked, limit) {
		result = append(result, candidates[entry.position])
		used[entry.position] = true
	}

	// Backfill from unused candidates in catalog order.
	for position, candidate := range candidates {
		if len(result) >= limit {
			break
		}
		if !used[position] {
			result = append(result, candidate)
			used[position] = true
		}
	}

	return result
}
