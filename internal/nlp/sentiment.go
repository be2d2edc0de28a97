package nlp

import "strings"

// Sentiment is the coarse polarity of an utterance. Downstream response
// augmentation keys off this three-way result only.
type Sentiment int

const (
	SentimentNeutral Sentiment = iota
	SentimentPositive
	SentimentNegative
)

func (s Sentiment) String() string {
	switch s {
	case SentimentPositive:
		return "positive"
	case SentimentNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// Lexicons are matched by prefix against normalized tokens, so one stem
// covers the inflected forms.
var positiveStems = []string{
	"хорош", "отличн", "прекрасн", "замечательн", "класс", "супер",
	"крут", "здоров", "нрав", "любл", "рад", "спасибо", "благодар",
	"топ", "кайф", "шикарн", "восторг",
}

var negativeStems = []string{
	"плох", "ужас", "кошмар", "отвратительн", "дорог", "груст",
	"разочаров", "сомнева", "отстой", "зл", "печал", "бес",
	"надоел", "устал", "проблем", "хуж",
}

// AnalyzeSentiment classifies the polarity of the text. A "не" directly
// before a positive word flips its contribution.
func AnalyzeSentiment(text string) Sentiment {
	toks := Tokens(text)
	pos, neg := 0, 0
	for i, tok := range toks {
		negated := i > 0 && (toks[i-1] == "не" || toks[i-1] == "нет")
		switch {
		case matchesStem(tok, positiveStems):
			if negated {
				neg++
			} else {
				pos++
			}
		case matchesStem(tok, negativeStems):
			if negated {
				pos++
			} else {
				neg++
			}
		}
	}
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func matchesStem(tok string, stems []string) bool {
	for _, stem := range stems {
		if strings.HasPrefix(tok, stem) {
			return true
		}
	}
	return false
}
