package dialog

import (
	"math"

	"github.com/avtoline/showroom-bot/internal/nlp"
)

// retrieve answers off-topic utterances from the precomputed question→answer
// corpus: vectorize, cosine-score against every stored vector, take the
// arg-max if it exceeds the retrieval threshold.
func (e *Engine) retrieve(utterance string) (string, bool) {
	if e.retrievalVectorizer == nil || e.corpus.Len() == 0 {
		return "", false
	}
	if !nlp.IsMeaningful(utterance) {
		return "", false
	}
	lemmatized := nlp.Lemmatize(utterance)
	if lemmatized == "" {
		return "", false
	}

	vec := e.retrievalVectorizer.Transform(lemmatized)
	bestIdx := -1
	bestSim := 0.0
	for i, stored := range e.corpus.Vectors {
		if sim := cosine(vec, stored); sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestSim <= e.catalog.Thresholds().RetrievalSimilarity {
		return "", false
	}

	answer := e.corpus.Answers[bestIdx] + sentimentSuffix(nlp.AnalyzeSentiment(utterance))
	answer = e.maybeUpsell(answer, "", e.retrievalUpsellProb)
	return answer, true
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, x := range a {
		normA += x * x
	}
	for _, x := range b {
		normB += x * x
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
