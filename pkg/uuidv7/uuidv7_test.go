// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kahani/pkg/uuidv7"
)

/*
TestNew produces valid, version 7, increasing identifiers.
*/
func TestNew(t *testing.T) {
	first, second := uuidv7.New(), uuidv7.New()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Less(t, first, second)

	assert.True(t, uuidv7.Valid(first))
	assert.False(t, uuidv7.Valid("history-1"))
}
