package sentence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionSchemaURL = "schema://get-sentence.json"

// questionSchema describes /get-sentence. Either correct_labels (current) or
// cct_label (legacy single-label) must be present. Extra fields are allowed.
var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"sentence": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"correct_labels": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"cct_label": map[string]any{
			"type": "string",
		},
	},
	"required": []any{"sentence"},
	"anyOf": []any{
		map[string]any{"required": []any{"correct_labels"}},
		map[string]any{"required": []any{"cct_label"}},
	},
}

var compiledQuestionSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, so round-trip the Go map.
	raw, err := json.Marshal(questionSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(questionSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(questionSchemaURL)
})

// questionPayload is the wire shape after validation.
type questionPayload struct {
	Sentence      string   `json:"sentence"`
	CorrectLabels []string `json:"correct_labels"`
	CCTLabel      *string  `json:"cct_label"`
}

// decodeQuestion validates body against the schema and converts it.
func decodeQuestion(body []byte) (*Question, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, &MalformedResponseError{Body: body, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledQuestionSchema()
	if err != nil {
		return nil, &MalformedResponseError{Body: body, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &MalformedResponseError{Body: body, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var p questionPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &MalformedResponseError{Body: body, Err: err}
	}

	q := &Question{Sentence: p.Sentence}
	switch {
	case p.CorrectLabels != nil:
		q.CorrectLabels = p.CorrectLabels
	case p.CCTLabel != nil:
		q.Legacy = true
		if *p.CCTLabel != "" {
			q.CorrectLabels = []string{*p.CCTLabel}
		}
	}
	if q.CorrectLabels == nil {
		q.CorrectLabels = []string{}
	}
	return q, nil
}
