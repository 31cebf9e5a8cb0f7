package tui

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		query, text string
		want        bool
	}{
		{"", "anything", true},
		{"   ", "anything", true},
		{"enough", "I am enough.", true},
		{"ENOUGH", "I am enough.", true},
		{"iae", "I am enough.", true},
		{"xyz", "I am enough.", false},
		{"enough!", "I am enough.", false},
		{"gratitude", "Gratitude first", true},
		{"café", "Morning café ritual", true},
	}
	for _, tt := range tests {
		if got, _ := Match(tt.query, tt.text); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
		}
	}
}

func TestMatch_EmptyQueryScoresZero(t *testing.T) {
	if _, score := Match("", "anything"); score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
}

func TestMatch_Ranking(t *testing.T) {
	_, prefix := Match("calm", "calm mornings")
	_, word := Match("calm", "I stay calm")
	_, scattered := Match("calm", "cats always like milk")
	if !(prefix > word && word > scattered) {
		t.Errorf("scores prefix=%d word=%d scattered=%d, want descending", prefix, word, scattered)
	}
}
