// Package nlp implements the utterance preprocessing the dialogue engine
// depends on: normalization, a lightweight Russian lemmatizer, a noise gate
// and coarse sentiment. Everything here is deterministic for a given input.
package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// stopwords that carry no intent on their own. Matched against normalized
// tokens.
var stopwords = map[string]bool{
	"и": true, "в": true, "во": true, "не": true, "на": true, "я": true,
	"ты": true, "вы": true, "он": true, "она": true, "оно": true, "они": true,
	"же": true, "бы": true, "ли": true, "а": true, "но": true,
	"у": true, "о": true, "об": true, "за": true, "по": true, "из": true,
	"к": true, "ко": true, "с": true, "со": true, "то": true, "это": true,
	"эта": true, "этот": true, "еще": true, "ну": true, "вот": true,
	"мне": true, "меня": true, "тебе": true, "вам": true, "нам": true,
	"как": true, "так": true, "там": true, "тут": true, "или": true,
}

// Normalize lowercases the text, folds ё to е, strips punctuation and
// collapses whitespace. Returns "" when nothing alphabetic or numeric
// survives.
func Normalize(text string) string {
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	hasContent := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if r == 'ё' {
				r = 'е'
			}
			b.WriteRune(r)
			lastSpace = false
			hasContent = true
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	if !hasContent {
		return ""
	}
	return strings.TrimSpace(b.String())
}

// Tokens splits normalized text into words.
func Tokens(text string) []string {
	n := Normalize(text)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}

// IsMeaningful reports whether the text carries anything worth classifying:
// non-empty after normalization and at least one informative token.
func IsMeaningful(text string) bool {
	for _, tok := range Tokens(text) {
		if stopwords[tok] {
			continue
		}
		if len([]rune(tok)) < 2 && !unicode.IsDigit([]rune(tok)[0]) {
			continue
		}
		return true
	}
	return false
}

// IsStopword reports whether a normalized token is in the stoplist.
func IsStopword(tok string) bool {
	return stopwords[tok]
}
