package questionbank

// Schema is a named JSON schema definition used to validate a dataset.
type Schema struct {
	Name       string
	Definition map[string]any
}

// QuestionsSchema describes the question dataset: an object mapping module
// keys to arrays of questions. Field names follow the published
// questions.json format ("question", "correct").
var QuestionsSchema = &Schema{
	Name: "questions",
	Definition: map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type": []any{"string", "integer"},
					},
					"question": map[string]any{"type": "string", "minLength": 1},
					"text":     map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"correct":  map[string]any{"type": "integer", "minimum": 0},
					"subtopic": map[string]any{"type": "string"},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []any{"basic", "intermediate", "advanced"},
					},
					"explanation": map[string]any{"type": "string"},
				},
				"required": []any{"options", "correct"},
				"anyOf": []any{
					map[string]any{"required": []any{"question"}},
					map[string]any{"required": []any{"text"}},
				},
			},
		},
	},
}

// ModulesSchema describes the module index.
var ModulesSchema = &Schema{
	Name: "modules",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version": map[string]any{"type": "string"},
			"modules": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key":         map[string]any{"type": "string", "minLength": 1},
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"count":       map[string]any{"type": "integer", "minimum": 0},
						"subtopics": map[string]any{
							"type":                 "object",
							"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
						},
						"difficulties": map[string]any{
							"type":                 "object",
							"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
						},
					},
					"required": []any{"key", "title"},
				},
			},
		},
		"required": []any{"modules"},
	},
}
