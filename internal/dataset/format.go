// Package dataset reads and writes generated records.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an on-disk dataset encoding.
type Format string

const (
	// FormatJSONL writes one JSON object per line.
	FormatJSONL Format = "jsonl"
	// FormatParquet writes a single Parquet file with one row per record.
	FormatParquet Format = "parquet"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Formats lists the supported format names.
func Formats() []string {
	return []string{string(FormatJSONL), string(FormatParquet)}
}

// ParseFormat converts a format name. The empty string means JSONL.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jsonl", "ndjson":
		return FormatJSONL, nil
	case "parquet":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, s, strings.Join(Formats(), ", "))
}

// FormatFromPath guesses the format of an existing file by extension.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet
	}
	return FormatJSONL
}
