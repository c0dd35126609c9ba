// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kahani/internal/platform/apperr"
	"github.com/taibuivan/kahani/pkg/pagination"
	"github.com/taibuivan/kahani/pkg/pointer"
)

/*
TestApply_OffsetThenLimit pins the offset-first ordering on a ten item list.
*/
func TestApply_OffsetThenLimit(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	page := pagination.Apply(items, pagination.Params{Offset: 3, Limit: pointer.To(2)})
	assert.Equal(t, []int{3, 4}, page)

	meta := pagination.NewMeta(pagination.Params{Offset: 3, Limit: pointer.To(2)}, len(items), "")
	assert.Equal(t, 10, meta.Count)
}

/*
TestApply_Bounds covers open-ended limits and offsets past the end.
*/
func TestApply_Bounds(t *testing.T) {
	items := []string{"a", "b", "c"}

	tests := []struct {
		name   string
		params pagination.Params
		want   []string
	}{
		{"no_params", pagination.Params{}, []string{"a", "b", "c"}},
		{"offset_only", pagination.Params{Offset: 1}, []string{"b", "c"}},
		{"limit_larger_than_rest", pagination.Params{Offset: 2, Limit: pointer.To(10)}, []string{"c"}},
		{"zero_limit", pagination.Params{Limit: pointer.To(0)}, []string{}},
		{"offset_past_end", pagination.Params{Offset: 5}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Apply(items, tt.params))
		})
	}
}

/*
TestFromRequest parses valid values and rejects garbage as validation errors.
*/
func TestFromRequest(t *testing.T) {
	params, err := pagination.FromRequest(httptest.NewRequest("GET", "/?offset=3&limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, 3, params.Offset)
	require.NotNil(t, params.Limit)
	assert.Equal(t, 2, *params.Limit)

	params, err = pagination.FromRequest(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Zero(t, params.Offset)
	assert.Nil(t, params.Limit)

	for _, target := range []string{"/?offset=abc", "/?limit=-1", "/?offset=-2"} {
		_, err := pagination.FromRequest(httptest.NewRequest("GET", target, nil))
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), target)
	}
}
