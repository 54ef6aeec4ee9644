package question

// fileSchema is the JSON Schema a question file must satisfy: an array of
// question records. Subject is optional (defaulted at load time); options are
// required only for multiple choice, which the loader enforces separately.
var fileSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type": "integer",
			},
			"subject": map[string]any{
				"type": "string",
			},
			"type": map[string]any{
				"type": "string",
				"enum": []any{"multiple_choice", "free_text"},
			},
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"answer": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"explanation": map[string]any{
				"type": "string",
			},
			"image_path": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"id", "type", "question", "answer"},
		"additionalProperties": true,
	},
}
