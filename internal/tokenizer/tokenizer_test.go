package tokenizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "punctuation stripped and order preserved",
			input: "Zomato Order!! 123",
			want:  []string{"zomato", "order", "123"},
		},
		{
			name:  "elongated spelling collapsed",
			input: "sooooo good",
			want:  []string{"soo", "good"},
		},
		{
			name:  "short tokens dropped",
			input: "at to uber go",
			want:  []string{"uber"},
		},
		{
			name:  "stopwords dropped",
			input: "payment for the gym with card",
			want:  []string{"payment", "gym", "card"},
		},
		{
			name:  "mixed separators",
			input: "AMZN*Mktp-US/Seattle",
			want:  []string{"amzn", "mktp", "seattle"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only punctuation",
			input: "!!! --- ***",
			want:  nil,
		},
		{
			name:  "collapse keeps double characters",
			input: "coffee shoppe",
			want:  []string{"coffee", "shoppe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeTruncatesToMaxTokens(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo", "lima",
	}
	got := Tokenize(strings.Join(words, " "))
	if len(got) != MaxTokens {
		t.Fatalf("expected %d tokens, got %d: %v", MaxTokens, len(got), got)
	}
	if got[0] != "alpha" || got[MaxTokens-1] != "juliet" {
		t.Errorf("truncation should keep the first %d tokens in order, got %v", MaxTokens, got)
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	input := "Uber *Trip 0423 Help.Uber.Com"
	first := Tokenize(input)
	for i := 0; i < 5; i++ {
		if got := Tokenize(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tokenize not deterministic: %v vs %v", got, first)
		}
	}
}
