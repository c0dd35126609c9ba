// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "unicode/utf16"

// DeriveID computes the stable numeric ID of a story.
//
// The key is title followed by audioLink, hashed over its UTF-16 code units
// with acc = acc*31 + unit in wrapping 32-bit signed arithmetic. The absolute
// value is returned as int64 because |math.MinInt32| does not fit in int32.
//
// The same story yields the same ID on every load, so IDs are safe to use in
// URLs, bookmarks and engagement records.
func DeriveID(title, audioLink string) int64 {
	var acc int32
	for _, unit := range utf16.Encode([]rune(title + audioLink)) {
		acc = (acc << 5) - acc + int32(unit)
	}

	id := int64(acc)
	if id < 0 {
		id = -id
	}
	return id
}
