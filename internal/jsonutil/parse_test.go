package jsonutil

import (
	"strings"
	"testing"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n  ", "{}"},
		{"multiline body", "```json\n{\n  \"a\": 1\n}\n```", "{\n  \"a\": 1\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdownFences(tt.input); got != tt.want {
				t.Errorf("StripMarkdownFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	got, err := ExtractJSON(`Here is the result: {"a": [1, 2]} hope it helps`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"a": [1, 2]}` {
		t.Errorf("got %q", got)
	}

	got, err = ExtractJSON(`[1, 2, 3] trailing`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `[1, 2, 3]` {
		t.Errorf("got %q", got)
	}

	if _, err := ExtractJSON("no json here"); err == nil {
		t.Error("expected error for text without JSON")
	}
}

func TestParse(t *testing.T) {
	type payload struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}

	got, err := Parse[payload]("```json\n{\"title\": \"t\", \"tags\": [\"a\"]}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "t" || len(got.Tags) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse[map[string]any](`{"broken": `)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid JSON") && !strings.Contains(err.Error(), "no closing") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestParseTruncatesPreview(t *testing.T) {
	long := `{"a": "` + strings.Repeat("x", 500)
	_, err := Parse[map[string]any](long)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 400 {
		t.Errorf("error message too long: %d chars", len(err.Error()))
	}
}
