// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"regexp"
	"strconv"
)

// durationPattern finds "<N> Minute" / "<N>min" markers in titles.
var durationPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:minute|min)`)

// DurationMatches reports whether title carries a duration marker of exactly minutes.
//
// Every marker in the title is considered, and the digits are compared as
// written, so "05 Minute" does not match 5.
func DurationMatches(title string, minutes int) bool {
	want := strconv.Itoa(minutes)
	for _, match := range durationPattern.FindAllStringSubmatch(title, -1) {
		if match[1] == want {
			return true
		}
	}
	return false
}

// DurationMinutes returns the first duration marker in title.
func DurationMinutes(title string) (int, bool) {
	match := durationPattern.FindStringSubmatch(title)
	if match == nil {
		return 0, false
	}

	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return minutes, true
}
