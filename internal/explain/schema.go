package explain

import "github.com/abhisek/tacit/internal/llm"

// ExplanationSchema is the structured output the model must return.
var ExplanationSchema = &llm.Schema{
	Name:        "label-explanation",
	Description: "Why a sentence carries each of its Community Cultural Wealth labels",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One or two sentences on what the sentence expresses",
			},
			"labels": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label": map[string]any{
							"type":        "string",
							"description": "A label from the answer key, spelled exactly as given",
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "Which words in the sentence signal this label (1-2 sentences)",
						},
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
