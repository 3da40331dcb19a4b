package llm

// explainSchema is a small structured-output shape used across tests.
var explainSchema = &Schema{
	Name:        "test-explanation",
	Description: "why a sentence carries its labels",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"labels": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label":  map[string]any{"type": "string"},
						"reason": map[string]any{"type": "string"},
					},
					"required":             []any{"label", "reason"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"summary", "labels"},
		"additionalProperties": false,
	},
}

const validExplanation = `{"summary":"Family support drives the goal.","labels":[{"label":"Familial","reason":"mentions parents"}]}`

func userPrompt(text string) []Message {
	return []Message{{Role: RoleUser, Content: text}}
}
