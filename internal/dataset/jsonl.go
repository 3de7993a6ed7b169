package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/querygen/internal/datagen"
	"github.com/abhisek/querygen/internal/schema"
)

// maxLineBytes bounds a single JSONL line when reading.
const maxLineBytes = 1 << 20

var recordSchema = &schema.Schema{
	Name: "querygen-record",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"instruction": map[string]any{"type": "string"},
			"input":       map[string]any{"type": "string"},
			"output":      map[string]any{"type": "string"},
		},
		"required":             []any{"instruction", "input", "output"},
		"additionalProperties": false,
	},
}

// WriteJSONL writes each record as one compact JSON object followed by a
// newline. HTML characters are not escaped.
func WriteJSONL(w io.Writer, records []datagen.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// ReadJSONL reads records written by WriteJSONL. Every non-blank line must
// be an object with exactly the instruction, input and output keys.
func ReadJSONL(r io.Reader) ([]datagen.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	records := []datagen.Record{}
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := schema.ValidateJSON(recordSchema, raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var rec datagen.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", line+1, err)
	}
	return records, nil
}
