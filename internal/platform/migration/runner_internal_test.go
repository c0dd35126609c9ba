// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestToPgx5DSN covers the URL schemes golang-migrate must see as pgx5.
*/
func TestToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/kahani":   "pgx5://u:p@db:5432/kahani",
		"postgresql://u:p@db:5432/kahani": "pgx5://u:p@db:5432/kahani",
		"pgx5://u:p@db:5432/kahani":       "pgx5://u:p@db:5432/kahani",
		"host=db user=u":                  "host=db user=u",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, toPgx5DSN(input))
		})
	}
}
