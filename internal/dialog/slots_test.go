package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
		ok   bool
	}{
		{"marker before", "машины до 1500000", 1500000, true},
		{"marker after", "бюджет 2 млн", 2000000, true},
		{"thousands word", "за 900 тысяч", 900000, true},
		{"glued suffix", "есть что-то за 700к?", 700000, true},
		{"decimal millions", "дешевле 1.5 млн", 1500000, true},
		{"trailing punctuation", "куплю за 800000.", 800000, true},
		{"large standalone", "1200000", 1200000, true},
		{"small count is not a price", "сравни 2 машины", 0, false},
		{"glued non-currency suffix", "возьму 2шт", 0, false},
		{"no numbers", "хочу красный седан", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractPrice(tt.in)
			assert.Equal(t, tt.ok, ok, "input %q", tt.in)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractVehicleName(t *testing.T) {
	e := testEngine(t, nil)
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"exact substring", "хочу лада веста", "Лада Веста", true},
		{"single distinctive word", "расскажи про джолион", "Хавал Джолион", true},
		{"typo", "почем ладо веста", "Лада Веста", true},
		{"no vehicle", "какие машины есть", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.extractVehicleName(tt.in)
			assert.Equal(t, tt.ok, ok, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCategory(t *testing.T) {
	e := testEngine(t, nil)

	cat, ok := e.extractCategory("хочу седан недорого")
	assert.True(t, ok)
	assert.Equal(t, "седан", cat)

	_, ok = e.extractCategory("хочу кабриолет")
	assert.False(t, ok)
}

// Classifying a phrase identical to a configured example must return that
// example's intent.
func TestClassifyIntentExactExamples(t *testing.T) {
	e := testEngine(t, nil)
	for _, id := range e.catalog.IntentIDs() {
		cfg, _ := e.catalog.Intent(id)
		for _, example := range cfg.Examples {
			got, ok := e.classifyIntent(example)
			assert.True(t, ok, "example %q of %s", example, id)
			assert.Equal(t, id, got, "example %q", example)
		}
	}
}

func TestClassifyIntentRejectsNoise(t *testing.T) {
	e := testEngine(t, nil)
	for _, in := range []string{"", "?!...", "ыва фжд олдж"} {
		_, ok := e.classifyIntent(in)
		assert.False(t, ok, "input %q", in)
	}
}
