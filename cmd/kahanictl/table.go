// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/pkg/slice"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const maxTitleWidth = 48

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    maxTitleWidth,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// storyTable renders the one-line-per-story listing shared by several commands.
func storyTable(stories []catalog.Story) string {
	rows := slice.Map(stories, func(story catalog.Story) []string {
		duration := "-"
		if minutes, ok := catalog.DurationMinutes(story.Title); ok {
			duration = fmt.Sprintf("%d min", minutes)
		}
		return []string{
			strconv.FormatInt(story.ID, 10),
			story.Title,
			duration,
			strings.Join(story.Keywords, ", "),
		}
	})

	return renderTable(
		[]string{"ID", "Title", "Duration", "Keywords"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
	)
}
