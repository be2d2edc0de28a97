package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and punctuation", "Привет, Бот!!!", "привет бот"},
		{"collapse whitespace", "  машины   до \t 1500000 ", "машины до 1500000"},
		{"yo folding", "Всё отличнО", "все отлично"},
		{"latin mixed", "Kia Sportage — хорош?", "kia sportage хорош"},
		{"no alphabetic content", "?!... --- !!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestLemmatizeDeterministic(t *testing.T) {
	a := Lemmatize("Сколько стоят машины?")
	b := Lemmatize("Сколько стоят машины?")
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestLemmatizeCollapsesInflections(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"машины", "машину"},
		{"цены", "цену"},
		{"стоит", "стоят"},
		{"хочу", "хотите"},
	}
	for _, tt := range tests {
		assert.Equal(t, LemmatizeWord(Normalize(tt.a)), LemmatizeWord(Normalize(tt.b)),
			"%q and %q should share a lemma", tt.a, tt.b)
	}
}

func TestLemmatizeEmpty(t *testing.T) {
	assert.Equal(t, "", Lemmatize("!!!"))
	assert.Equal(t, "", Lemmatize(""))
}

func TestIsMeaningful(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"real question", "сколько стоит седан", true},
		{"number only", "1500000", true},
		{"empty", "", false},
		{"whitespace", "   \t  ", false},
		{"punctuation only", "?!...", false},
		{"pure stopwords", "ну и и а", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMeaningful(tt.in))
		})
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Sentiment
	}{
		{"positive", "отличная машина, мне нравится", SentimentPositive},
		{"negative", "это ужасно и слишком дорого", SentimentNegative},
		{"neutral", "какие машины есть в наличии", SentimentNeutral},
		{"negated positive", "мне не нравится этот седан", SentimentNegative},
		{"empty", "", SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeSentiment(tt.in), "input %q", tt.in)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.0, Ratio("lada vesta", "lada vesta"), 1e-9)
	assert.InDelta(t, 1.0, Ratio("", ""), 1e-9)
	assert.InDelta(t, 0.0, Ratio("abcd", "wxyz"), 1e-9)

	// One edit across ten runes.
	assert.InDelta(t, 0.9, Ratio("lada vesta", "lada vestu"), 1e-9)

	// Symmetry.
	assert.InDelta(t, Ratio("седан", "седаны"), Ratio("седаны", "седан"), 1e-9)
}
