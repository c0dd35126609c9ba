// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with small generic
helpers used by the catalog and library filters.
*/
package slice

import (
	"cmp"
	"slices"
)

// Map maps a slice of type T to a slice of type U.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns, in order, the elements for which predicate is true.
// The result is never nil, so it encodes as an empty JSON array.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0)
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// Take returns at most n leading elements. Negative n yields an empty slice.
func Take[T any](input []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(input) {
		n = len(input)
	}
	return input[:n]
}

// SortedUnique returns the distinct values of input in ascending order.
func SortedUnique[T cmp.Ordered](input []T) []T {
	result := slices.Clone(input)
	if result == nil {
		result = []T{}
	}
	slices.Sort(result)
	return slices.Compact(result)
}
