package keywords

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "dropsStopWords",
			title: "The Water Cycle and Its Importance",
			want:  "water cycle its",
		},
		{
			name:  "dropsSectionWords",
			title: "Introduction to Photosynthesis",
			want:  "photosynthesis",
		},
		{
			name:  "capsAtThreeKeywords",
			title: "Solar System Planets Moons Asteroids",
			want:  "solar system planets",
		},
		{
			name:  "dropsShortTokens",
			title: "AI in K12 Education",
			want:  "k12 education",
		},
		{
			name:  "stripsPunctuation",
			title: "Fractions: Numerators, Denominators",
			want:  "fractions numerators denominators",
		},
		{
			name:  "fallsBackToTitle",
			title: "The How and Why",
			want:  "The How and Why",
		},
		{
			name:  "emptyTitle",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.title); got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
