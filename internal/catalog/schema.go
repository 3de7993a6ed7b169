package catalog

import "github.com/abhisek/querygen/internal/schema"

func stringList() map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
}

// fileSchema describes the shape of a catalog file. Cross-field rules
// (unique names, user pools, placeholders) are checked in validate.go.
var fileSchema = &schema.Schema{
	Name: "querygen-catalog",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"instruction": map[string]any{"type": "string", "minLength": 1},
			"vocabulary": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status":   stringList(),
					"priority": stringList(),
					"user":     stringList(),
					"tag":      stringList(),
					"keyword":  stringList(),
					"count": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "integer"},
					},
					"user_split": map[string]any{"type": "integer", "minimum": 0},
				},
				"required":             []any{"status", "priority", "user", "tag", "keyword", "count"},
				"additionalProperties": false,
			},
			"templates": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":      map[string]any{"type": "string", "minLength": 1},
						"category":  map[string]any{"type": "string"},
						"questions": stringList(),
						"query":     map[string]any{"type": "string", "minLength": 1},
					},
					"required":             []any{"name", "questions", "query"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"instruction", "vocabulary", "templates"},
		"additionalProperties": false,
	},
}
