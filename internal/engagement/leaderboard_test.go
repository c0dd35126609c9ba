// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/engagement"
)

/*
TestCategory prefers the first keyword and falls back to title hints.
*/
func TestCategory(t *testing.T) {
	tests := []struct {
		name  string
		story catalog.Story
		want  string
	}{
		{"keyword_capitalised", catalog.Story{Keywords: []string{"bedtime stories", "kids"}}, "Bedtime stories"},
		{"keyword_rest_unchanged", catalog.Story{Keywords: []string{"mORAL"}}, "MORAL"},
		{"devanagari_keyword", catalog.Story{Keywords: []string{"नैतिक"}}, "नैतिक"},
		{"sleep_title", catalog.Story{Title: "A Sleepy Tale"}, "Sleep Stories"},
		{"morning_title", catalog.Story{Title: "Good MORNING"}, "Morning"},
		{"anxiety_title", catalog.Story{Title: "Calm your anxiety"}, "Anxiety"},
		{"fallback", catalog.Story{Title: "The Clever Crow"}, "Story"},
		{"empty_keyword_uses_title", catalog.Story{Title: "Sleep now", Keywords: []string{""}}, "Sleep Stories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engagement.Category(tt.story))
		})
	}
}

/*
TestDurationLabel renders minute markers as "N:00".
*/
func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "15:00", engagement.DurationLabel("15 Minute Bedtime Story"))
	assert.Equal(t, "5:00", engagement.DurationLabel("Quick 5min tale"))
	assert.Equal(t, "10:00", engagement.DurationLabel("No marker"))
}
