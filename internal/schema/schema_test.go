package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pairSchema = &Schema{
	Name: "test-pair",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"weight":   map[string]any{"type": "integer", "minimum": 1},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"Find open tickets","weight":2}`, false},
		{"optional omitted", `{"question":"Find open tickets"}`, false},
		{"missing required", `{"weight":2}`, true},
		{"extra key", `{"question":"q","extra":true}`, true},
		{"wrong type", `{"question":"q","weight":"two"}`, true},
		{"not json", `{question`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(pairSchema, []byte(tt.raw))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "test-pair", verr.Schema)
		})
	}
}

func TestValidateNormalizesGoValues(t *testing.T) {
	// Plain Go ints, as produced by a YAML decoder, must satisfy "integer".
	err := Validate(pairSchema, map[string]any{"question": "q", "weight": 3})
	require.NoError(t, err)

	err = Validate(pairSchema, map[string]any{"question": "q", "weight": 0})
	require.Error(t, err)
}
