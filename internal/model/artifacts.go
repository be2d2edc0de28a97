// Package model abstracts the pre-trained artifacts the dialogue engine
// consumes: an intent classifier, the vectorizers that feed it and the
// retrieval corpus, and a similarity-based answer corpus. The artifacts are
// produced by an offline training pipeline and treated as opaque here; a
// missing or malformed artifact is fatal at startup.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Vectorizer turns lemmatized text into a feature vector.
type Vectorizer interface {
	Transform(lemmatized string) []float64
}

// Classifier predicts an intent id with a confidence in [0, 1].
type Classifier interface {
	Predict(vec []float64) (intent string, confidence float64)
}

// Artifact file names inside the artifacts directory.
const (
	intentModelFile         = "intent_model.json"
	intentVectorizerFile    = "intent_vectorizer.json"
	retrievalVectorizerFile = "retrieval_vectorizer.json"
	retrievalCorpusFile     = "retrieval_corpus.json"
)

// TfidfVectorizer is the production Vectorizer: term frequency weighted by
// pre-computed inverse document frequencies, L2-normalized.
type TfidfVectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// Transform vectorizes lemmatized text. Unknown terms are ignored.
func (v *TfidfVectorizer) Transform(lemmatized string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, term := range strings.Fields(lemmatized) {
		if idx, ok := v.Vocabulary[term]; ok && idx >= 0 && idx < len(vec) {
			vec[idx] += v.IDF[idx]
		}
	}
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (v *TfidfVectorizer) validate() error {
	if len(v.IDF) == 0 {
		return fmt.Errorf("empty idf table")
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return fmt.Errorf("term %q maps to index %d outside idf table of size %d", term, idx, len(v.IDF))
		}
	}
	return nil
}

// LinearClassifier is the production Classifier: one weight row per class
// over the intent vectorizer's feature space, softmax confidence.
type LinearClassifier struct {
	Classes []string    `json:"classes"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// Predict scores the vector against every class and returns the best class
// with its softmax probability.
func (c *LinearClassifier) Predict(vec []float64) (string, float64) {
	if len(c.Classes) == 0 {
		return "", 0
	}
	scores := make([]float64, len(c.Classes))
	for i, row := range c.Weights {
		s := c.Bias[i]
		n := len(row)
		if len(vec) < n {
			n = len(vec)
		}
		for j := 0; j < n; j++ {
			s += row[j] * vec[j]
		}
		scores[i] = s
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}

	// Softmax with max-shift for stability.
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - scores[best])
	}
	return c.Classes[best], 1 / sum
}

func (c *LinearClassifier) validate() error {
	if len(c.Classes) == 0 {
		return fmt.Errorf("no classes")
	}
	if len(c.Weights) != len(c.Classes) || len(c.Bias) != len(c.Classes) {
		return fmt.Errorf("weights/bias rows (%d/%d) do not match classes (%d)",
			len(c.Weights), len(c.Bias), len(c.Classes))
	}
	return nil
}

// Corpus is the retrieval fallback data: a precomputed vector per stored
// question and the answer paired with it, parallel by index.
type Corpus struct {
	Vectors [][]float64 `json:"vectors"`
	Answers []string    `json:"answers"`
}

// Len returns the number of stored question/answer pairs.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Answers)
}

func (c *Corpus) validate() error {
	if len(c.Vectors) != len(c.Answers) {
		return fmt.Errorf("vectors (%d) and answers (%d) are not parallel", len(c.Vectors), len(c.Answers))
	}
	return nil
}

// Artifacts bundles everything LoadArtifacts produces.
type Artifacts struct {
	IntentClassifier    Classifier
	IntentVectorizer    Vectorizer
	RetrievalVectorizer Vectorizer
	Corpus              *Corpus
}

// LoadArtifacts reads all four artifact files from dir. Any missing or
// malformed file is an error; there is no partial or degraded mode.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var clf LinearClassifier
	if err := readArtifact(dir, intentModelFile, &clf); err != nil {
		return nil, err
	}
	if err := clf.validate(); err != nil {
		return nil, fmt.Errorf("model: %s: %w", intentModelFile, err)
	}

	var intentVec TfidfVectorizer
	if err := readArtifact(dir, intentVectorizerFile, &intentVec); err != nil {
		return nil, err
	}
	if err := intentVec.validate(); err != nil {
		return nil, fmt.Errorf("model: %s: %w", intentVectorizerFile, err)
	}

	var retrVec TfidfVectorizer
	if err := readArtifact(dir, retrievalVectorizerFile, &retrVec); err != nil {
		return nil, err
	}
	if err := retrVec.validate(); err != nil {
		return nil, fmt.Errorf("model: %s: %w", retrievalVectorizerFile, err)
	}

	var corpus Corpus
	if err := readArtifact(dir, retrievalCorpusFile, &corpus); err != nil {
		return nil, err
	}
	if err := corpus.validate(); err != nil {
		return nil, fmt.Errorf("model: %s: %w", retrievalCorpusFile, err)
	}

	return &Artifacts{
		IntentClassifier:    &clf,
		IntentVectorizer:    &intentVec,
		RetrievalVectorizer: &retrVec,
		Corpus:              &corpus,
	}, nil
}

func readArtifact(dir, name string, out any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("model: failed to read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("model: failed to decode artifact %s: %w", path, err)
	}
	return nil
}
