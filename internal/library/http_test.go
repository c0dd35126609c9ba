// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/library"
)

type staticCatalog []catalog.Story

func (stories staticCatalog) All(context.Context) []catalog.Story { return stories }

/*
TestHandler_Browse returns visible stories with the full keyword option set.
*/
func TestHandler_Browse(t *testing.T) {
	router := library.NewHandler(staticCatalog(fixtures())).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?duration=10&keyword=Sleep", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []catalog.Story `json:"data"`
		Meta library.Meta    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, []int64{1}, storyIDs(body.Data))
	assert.Equal(t, 1, body.Meta.ResultCount)
	assert.Equal(t, 4, body.Meta.Total)
	assert.Equal(t, []string{"Kids", "Magic", "Morning", "Sleep"}, body.Meta.Keywords)
}

/*
TestHandler_Browse_InvalidDuration rejects non-numeric and non-positive durations.
*/
func TestHandler_Browse_InvalidDuration(t *testing.T) {
	router := library.NewHandler(staticCatalog(fixtures())).Routes()

	for _, target := range []string{"/?duration=ten", "/?duration=0"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}
}

/*
TestHandler_Browse_QueryTooLong rejects free text beyond the character cap.
*/
func TestHandler_Browse_QueryTooLong(t *testing.T) {
	router := library.NewHandler(staticCatalog(fixtures())).Routes()

	recorder := httptest.NewRecorder()
	target := "/?q=" + url.QueryEscape(strings.Repeat("a", 201))
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?keyword=", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Meta library.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Meta.ResultCount)
}
