package nlp

import "strings"

// lemmaExceptions maps irregular or high-traffic dialogue forms straight to a
// lemma, bypassing the stemmer.
var lemmaExceptions = map[string]string{
	"машины": "машина", "машину": "машина", "машине": "машина",
	"машин": "машина", "машинах": "машина", "машиной": "машина",
	"авто": "авто", "автомобиль": "автомобиль", "автомобиля": "автомобиль",
	"автомобили": "автомобиль", "автомобилей": "автомобиль",
	"есть": "есть", "нет": "нет",
	"хочу": "хотеть", "хочешь": "хотеть", "хотите": "хотеть", "хотел": "хотеть",
	"могу": "мочь", "можно": "можно",
	"цены": "цена", "цену": "цена", "цене": "цена", "цен": "цена",
	"стоит": "стоить", "стоят": "стоить", "стоила": "стоить",
	"привет": "привет", "здравствуйте": "здравствуйте",
	"спасибо": "спасибо", "пока": "пока",
}

// suffixes stripped by the light stemmer, longest first. The goal is not a
// citation form but a stable key: all inflections of a word must collapse to
// the same string.
var lemmaSuffixes = []string{
	"иями", "ями", "ами", "иях",
	"иям", "ией", "ием", "ого", "его", "ому", "ему",
	"ыми", "ими", "ешь", "ете", "ует", "уют", "ают", "яют",
	"ить", "ыть", "ать", "ять", "еть", "уть",
	"ях", "ах", "ям", "ам", "ая", "яя", "ое", "ее",
	"ый", "ий", "ой", "ою", "ла", "ло", "ли",
	"ем", "ет", "ут", "ют", "ов", "ев", "ей",
	"ии", "ие", "ия", "ию",
	"ы", "и", "а", "я", "о", "е", "у", "ю", "ь",
}

const minStemRunes = 3

// Lemmatize reduces every token of the text to its base form and joins the
// results with single spaces. Deterministic for a given text.
func Lemmatize(text string) string {
	toks := Tokens(text)
	if len(toks) == 0 {
		return ""
	}
	lemmas := make([]string, 0, len(toks))
	for _, tok := range toks {
		lemmas = append(lemmas, LemmatizeWord(tok))
	}
	return strings.Join(lemmas, " ")
}

// LemmatizeWord reduces a single normalized token.
func LemmatizeWord(tok string) string {
	if lemma, ok := lemmaExceptions[tok]; ok {
		return lemma
	}
	runes := []rune(tok)
	if len(runes) <= minStemRunes {
		return tok
	}
	for _, suf := range lemmaSuffixes {
		sr := []rune(suf)
		if len(runes)-len(sr) < minStemRunes {
			continue
		}
		if strings.HasSuffix(tok, suf) {
			return string(runes[:len(runes)-len(sr)])
		}
	}
	return tok
}
