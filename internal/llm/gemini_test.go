package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiAliases(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiAliases); got != "gemini-2.5-flash" {
		t.Errorf("gemini-flash -> %q", got)
	}
	if got := resolveModel("gemini-2.0-flash", geminiAliases); got != "gemini-2.0-flash" {
		t.Errorf("pass-through -> %q", got)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(explainSchema.Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("Required = %v", s.Required)
	}
	labels := s.Properties["labels"]
	if labels == nil || labels.Type != genai.TypeArray {
		t.Fatalf("labels = %+v", labels)
	}
	if labels.Items.Properties["reason"].Type != genai.TypeString {
		t.Errorf("reason type = %s", labels.Items.Properties["reason"].Type)
	}
}

func TestGeminiSchema_EnumAndUnknownType(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "mystery",
		"enum": []string{"Social", "Community"},
	})
	if s.Type != genai.TypeString {
		t.Errorf("unknown type should map to STRING, got %s", s.Type)
	}
	if len(s.Enum) != 2 {
		t.Errorf("Enum = %v", s.Enum)
	}
}
