// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kahani/internal/catalog"
)

func story(id int64, keywords ...string) catalog.Story {
	return catalog.Story{ID: id, Title: "story", Keywords: keywords}
}

func ids(stories []catalog.Story) []int64 {
	result := make([]int64, 0, len(stories))
	for _, s := range stories {
		result = append(result, s.ID)
	}
	return result
}

/*
TestRelated_ScoresAndStableTies ranks by keyword overlap, keeping catalog
order between equal scores.
*/
func TestRelated_ScoresAndStableTies(t *testing.T) {
	stories := []catalog.Story{
		story(1, "Sleep", "Kids"),
		story(2, "morning"),
		story(3, "sleep"),
		story(4, "kids", "SLEEP"),
		story(5, "sleep"),
	}

	got := catalog.Related(stories, stories[0], 3)
	assert.Equal(t, []int64{4, 3, 5}, ids(got))
}

/*
TestRelated_NoKeywords falls back to catalog order.
*/
func TestRelated_NoKeywords(t *testing.T) {
	stories := []catalog.Story{story(1), story(2, "x"), story(3), story(4)}

	assert.Equal(t, []int64{2, 3}, ids(catalog.Related(stories, stories[0], 2)))
}

/*
TestRelated_Backfill returns zero-score stories when nothing overlaps.
*/
func TestRelated_Backfill(t *testing.T) {
	stories := []catalog.Story{story(1, "sleep"), story(2, "focus"), story(3, "rain")}

	assert.Equal(t, []int64{2, 3}, ids(catalog.Related(stories, stories[0], 3)))
}

/*
TestRelated_Length checks len == min(limit, candidates) across limits.
*/
func TestRelated_Length(t *testing.T) {
	stories := []catalog.Story{story(1, "a"), story(2, "a"), story(3, "b"), story(4), story(5, "a", "b")}

	for limit := -1; limit <= 7; limit++ {
		got := catalog.Related(stories, stories[2], limit)
		want := min(max(limit, 0), len(stories)-1)

		assert.Len(t, got, want, "limit %d", limit)
		assert.NotContains(t, ids(got), int64(3))
	}
}

/*
TestRelated_ExcludesDuplicatesOfReference drops every story sharing the reference ID.
*/
func TestRelated_ExcludesDuplicatesOfReference(t *testing.T) {
	stories := []catalog.Story{story(1, "a"), story(2, "a"), story(1, "a")}

	assert.Equal(t, []int64{2}, ids(catalog.Related(stories, stories[0], 5)))
}
