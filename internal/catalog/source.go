// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/kahani/internal/platform/validate"
)

// Source produces the raw story list of the catalog.
type Source interface {
	Load(ctx context.Context) ([]Story, error)
}

// # Document Decoding

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension. Anything
// that is not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// record is one entry of a catalog document as written on disk.
type record struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	AudioLink   string   `json:"audio_link" yaml:"audio_link" validate:"required"`
	Thumbnail   string   `json:"thumbnail" yaml:"thumbnail"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	ProcessedAt string   `json:"processed_at" yaml:"processed_at"`
}

// RecordWarning describes a document entry that was loaded incomplete.
type RecordWarning struct {
	Index int
	Title string
	Err   error
}

func (w RecordWarning) Error() string {
	return fmt.Sprintf("record %d (%q): %v", w.Index, w.Title, w.Err)
}

func (w RecordWarning) Unwrap() error { return w.Err }

// Decode parses a catalog document into stories with derived IDs.
//
// Every entry becomes a story, in document order. Entries missing a title or
// audio link are still loaded and additionally reported as [RecordWarning]s.
// A document that cannot be parsed at all is an error.
func Decode(data []byte, format Format) ([]Story, []RecordWarning, error) {
	var records []record

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, nil, fmt.Errorf("catalog_decode_yaml_failed: %w", err)
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return []Story{}, nil, nil
		}
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, nil, fmt.Errorf("catalog_decode_json_failed: %w", err)
		}
	}

	stories := make([]Story, 0, len(records))
	var warnings []RecordWarning

	for index, entry := range records {
		if err := validate.Struct(entry); err != nil {
			warnings = append(warnings, RecordWarning{Index: index, Title: entry.Title, Err: err})
		}

		stories = append(stories, Story{
			ID:          DeriveID(entry.Title, entry.AudioLink),
			Title:       entry.Title,
			AudioLink:   entry.AudioLink,
			Thumbnail:   entry.Thumbnail,
			Description: entry.Description,
			Keywords:    entry.Keywords,
			ProcessedAt: entry.ProcessedAt,
		})
	}

	return stories, warnings, nil
}

// # File Source

// FileSource reads the catalog from a JSON or YAML file.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Load reads and decodes the file. Incomplete entries are logged and kept.
func (source *FileSource) Load(ctx context.Context) ([]Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source.path)
	if err != nil {
		return nil, fmt.Errorf("catalog_read_failed: %w", err)
	}

	stories, warnings, err := Decode(data, FormatFromPath(source.path))
	if err != nil {
		return nil, err
	}

	for _, warning := range warnings {
		source.logger.WarnContext(ctx, "catalog_record_incomplete",
			slog.String("path", source.path),
			slog.Int("index", warning.Index),
			slog.String("title", warning.Title),
			slog.String("error", warning.Err.Error()),
		)
	}

	return stories, nil
}

// # Static Source

// StaticSource serves a fixed story list. IDs are derived for entries that lack one.
type StaticSource []Story

// Load implements [Source].
func (source StaticSource) Load(context.Context) ([]Story, error) {
	stories := make([]Story, len(source))
	for i, story := range source {
		if story.ID == 0 {
			story.ID = DeriveID(story.Title, story.AudioLink)
		}
		stories[i] = story
	}
	return stories, nil
}
