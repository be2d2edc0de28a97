package dialog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/avtoline/showroom-bot/internal/nlp"
)

// extractVehicleName fuzzy-matches text fragments against catalog vehicle
// names and returns the best match at or above the vehicle-match threshold.
// Ties break toward the first name in catalog order; the order is
// deterministic (sorted) but carries no meaning.
func (e *Engine) extractVehicleName(text string) (string, bool) {
	normText := nlp.Normalize(text)
	if normText == "" {
		return "", false
	}
	toks := strings.Fields(normText)

	bestScore := 0.0
	bestName := ""
	for _, name := range e.catalog.Names() {
		score := vehicleNameScore(normText, toks, nlp.Normalize(name))
		if score > bestScore {
			bestScore = score
			bestName = name
		}
	}
	if bestName == "" || bestScore < e.catalog.Thresholds().VehicleMatch {
		return "", false
	}
	return bestName, true
}

func vehicleNameScore(normText string, toks []string, normName string) float64 {
	if normName == "" {
		return 0
	}
	if strings.Contains(normText, normName) {
		return 1
	}

	score := 0.0
	nameToks := strings.Fields(normName)

	// Sliding token windows the width of the name.
	for i := 0; i+len(nameToks) <= len(toks); i++ {
		frag := strings.Join(toks[i:i+len(nameToks)], " ")
		if r := nlp.Ratio(frag, normName); r > score {
			score = r
		}
	}

	// A single distinctive word of the name ("веста" for "Лада Веста") is
	// enough for typo-tolerant recognition.
	for _, nt := range nameToks {
		if len([]rune(nt)) < 4 {
			continue
		}
		for _, t := range toks {
			if r := nlp.Ratio(t, nt); r > score {
				score = r
			}
		}
	}
	return score
}

// extractCategory finds the first catalog category contained in the
// normalized text.
func (e *Engine) extractCategory(text string) (string, bool) {
	normText := nlp.Normalize(text)
	if normText == "" {
		return "", false
	}
	for _, cat := range e.catalog.Categories() {
		if strings.Contains(normText, nlp.Normalize(cat)) {
			return cat, true
		}
	}
	return "", false
}

// Currency context for price extraction. A number next to one of these (or a
// large standalone number) is treated as a price ceiling.
var priceMarkers = map[string]bool{
	"до": true, "за": true, "бюджет": true, "бюджета": true, "бюджетом": true,
	"руб": true, "рублей": true, "рубль": true, "рубля": true, "р": true,
	"цена": true, "цены": true, "ценой": true, "стоимость": true, "стоимостью": true,
	"дешевле": true, "дороже": true, "максимум": true,
}

var priceMultipliers = map[string]float64{
	"тыс": 1000, "тысяч": 1000, "тысячи": 1000, "к": 1000, "k": 1000,
	"млн": 1e6, "миллион": 1e6, "миллиона": 1e6, "миллионов": 1e6,
}

// A bare number with no currency context must be at least this large to be
// read as an amount, so "сравни 2 машины" is not a filter request.
const minStandaloneAmount = 10000

var numberToken = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)([a-zа-я]*)$`)

// extractPrice parses the first plausible currency amount from the text.
// Returns the amount in rubles, or false when none is found. Tokenization is
// done on the raw text so decimal amounts like "1.5 млн" survive; only edge
// punctuation is trimmed.
func extractPrice(text string) (int, bool) {
	toks := strings.Fields(strings.ToLower(text))
	for i := range toks {
		toks[i] = strings.Trim(toks[i], "-–—!?.,:;()«»\"'")
	}
	for i, tok := range toks {
		m := numberToken.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil || num <= 0 {
			continue
		}

		mult := 1.0
		hasContext := false
		if m[2] != "" {
			scale, ok := priceMultipliers[m[2]]
			if !ok && !priceMarkers[m[2]] {
				continue // glued suffix that is not currency-related, e.g. "2шт"
			}
			if ok {
				mult = scale
			}
			hasContext = true
		}
		if i > 0 && priceMarkers[toks[i-1]] {
			hasContext = true
		}
		if i+1 < len(toks) {
			if scale, ok := priceMultipliers[toks[i+1]]; ok {
				mult = scale
				hasContext = true
			} else if priceMarkers[toks[i+1]] {
				hasContext = true
			}
		}

		value := int(num * mult)
		if value <= 0 {
			continue
		}
		if !hasContext && value < minStandaloneAmount {
			continue
		}
		return value, true
	}
	return 0, false
}
