package dialog

import (
	"github.com/avtoline/showroom-bot/internal/nlp"
)

// classifyIntent resolves an intent id for the utterance, or false.
//
// Two paths feed the decision. The example matcher fuzzy-scores the
// lemmatized input against every intent's lemmatized examples and is
// deterministic and auditable; it corrects the statistical model on short,
// common phrasings. The statistical model generalizes to phrasings the
// examples never saw. A strong example match always wins; otherwise the
// model's prediction is used when its own confidence clears the same
// threshold.
func (e *Engine) classifyIntent(utterance string) (string, bool) {
	lemmatized := nlp.Lemmatize(utterance)
	if lemmatized == "" {
		return "", false
	}
	threshold := e.catalog.Thresholds().IntentScore

	bestScore := 0.0
	bestIntent := ""
	for _, id := range e.catalog.IntentIDs() {
		for _, example := range e.exampleLemmas[id] {
			if r := nlp.Ratio(lemmatized, example); r > bestScore {
				bestScore = r
				bestIntent = id
			}
		}
	}
	if bestIntent != "" && bestScore >= threshold {
		return bestIntent, true
	}

	if e.classifier != nil && e.intentVectorizer != nil {
		intent, confidence := e.classifier.Predict(e.intentVectorizer.Transform(lemmatized))
		if intent != "" && confidence >= threshold {
			return intent, true
		}
	}
	return "", false
}

// buildExampleLemmas precomputes the lemmatized example phrases per intent;
// empty lemmas are dropped so they can never match everything.
func buildExampleLemmas(e *Engine) map[string][]string {
	lemmas := make(map[string][]string)
	for _, id := range e.catalog.IntentIDs() {
		intent, _ := e.catalog.Intent(id)
		for _, example := range intent.Examples {
			if l := nlp.Lemmatize(example); l != "" {
				lemmas[id] = append(lemmas[id], l)
			}
		}
	}
	return lemmas
}
