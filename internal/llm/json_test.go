package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bareJSON",
			input: `[{"title": "A"}]`,
			want:  `[{"title": "A"}]`,
		},
		{
			name:  "jsonFence",
			input: "Here you go:\n```json\n[{\"title\": \"A\"}]\n```\nEnjoy!",
			want:  `[{"title": "A"}]`,
		},
		{
			name:  "plainFence",
			input: "```\n[{\"title\": \"A\"}]\n```",
			want:  `[{"title": "A"}]`,
		},
		{
			name:  "surroundingWhitespace",
			input: "  \n[{\"title\": \"A\"}]\n ",
			want:  `[{"title": "A"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSlides(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantErr    bool
		wantSlides int
		wantTitle  string
	}{
		{
			name: "arrayResponse",
			content: `[
				{"title": "Photosynthesis", "content": ["Light", "Chlorophyll"], "notes": "Intro.", "has_image": true},
				{"title": "Summary", "content": ["Recap"], "notes": "Wrap up.", "has_image": false}
			]`,
			wantSlides: 2,
			wantTitle:  "Photosynthesis",
		},
		{
			name:       "wrappedResponse",
			content:    `{"slides": [{"title": "A", "content": [], "notes": "n"}]}`,
			wantSlides: 1,
			wantTitle:  "A",
		},
		{
			name:       "fencedResponse",
			content:    "```json\n[{\"title\": \"A\", \"notes\": \"n\"}]\n```",
			wantSlides: 1,
			wantTitle:  "A",
		},
		{
			name:    "notJSON",
			content: "Sorry, I cannot do that.",
			wantErr: true,
		},
		{
			name:    "emptyArray",
			content: `[]`,
			wantErr: true,
		},
		{
			name:    "missingTitle",
			content: `[{"title": "", "notes": "n"}]`,
			wantErr: true,
		},
		{
			name:    "emptyContent",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slides, err := parseSlides(tt.content)

			if tt.wantErr {
				if err == nil {
					t.Fatal("parseSlides() expected error, got nil")
				}
				var genErr *GenerationError
				if !errors.As(err, &genErr) {
					t.Errorf("parseSlides() error = %T, want *GenerationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSlides() error = %v", err)
			}
			if len(slides) != tt.wantSlides {
				t.Fatalf("parseSlides() returned %d slides, want %d", len(slides), tt.wantSlides)
			}
			if slides[0].Title != tt.wantTitle {
				t.Errorf("slides[0].Title = %q, want %q", slides[0].Title, tt.wantTitle)
			}
		})
	}
}
