package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTfidfTransform(t *testing.T) {
	v := &TfidfVectorizer{
		Vocabulary: map[string]int{"цена": 0, "машина": 1, "тест": 2},
		IDF:        []float64{1.0, 2.0, 3.0},
	}

	vec := v.Transform("цена машина")
	require.Len(t, vec, 3)

	// L2 norm is 1 for a non-empty vector.
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)

	// Unknown terms contribute nothing.
	assert.Equal(t, []float64{0, 0, 0}, v.Transform("неизвестное слово"))
	assert.Equal(t, []float64{0, 0, 0}, v.Transform(""))
}

func TestLinearClassifierPredict(t *testing.T) {
	c := &LinearClassifier{
		Classes: []string{"hello", "car_price"},
		Weights: [][]float64{{3, 0}, {0, 3}},
		Bias:    []float64{0, 0},
	}

	intent, conf := c.Predict([]float64{1, 0})
	assert.Equal(t, "hello", intent)
	assert.Greater(t, conf, 0.9)

	intent, conf = c.Predict([]float64{0, 1})
	assert.Equal(t, "car_price", intent)
	assert.Greater(t, conf, 0.9)

	// Zero vector: confidence degenerates to 1/len(classes).
	_, conf = c.Predict([]float64{0, 0})
	assert.InDelta(t, 0.5, conf, 1e-9)
}

func writeArtifact(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}

func writeAllArtifacts(t *testing.T, dir string) {
	t.Helper()
	writeArtifact(t, dir, "intent_model.json", LinearClassifier{
		Classes: []string{"hello"},
		Weights: [][]float64{{1}},
		Bias:    []float64{0},
	})
	writeArtifact(t, dir, "intent_vectorizer.json", TfidfVectorizer{
		Vocabulary: map[string]int{"привет": 0},
		IDF:        []float64{1},
	})
	writeArtifact(t, dir, "retrieval_vectorizer.json", TfidfVectorizer{
		Vocabulary: map[string]int{"дело": 0},
		IDF:        []float64{1},
	})
	writeArtifact(t, dir, "retrieval_corpus.json", Corpus{
		Vectors: [][]float64{{1}},
		Answers: []string{"Все отлично!"},
	})
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir)

	a, err := LoadArtifacts(dir)
	require.NoError(t, err)
	assert.NotNil(t, a.IntentClassifier)
	assert.NotNil(t, a.IntentVectorizer)
	assert.NotNil(t, a.RetrievalVectorizer)
	assert.Equal(t, 1, a.Corpus.Len())
}

func TestLoadArtifactsMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "retrieval_corpus.json")))

	_, err := LoadArtifacts(dir)
	assert.Error(t, err)
}

func TestLoadArtifactsRejectsMismatchedCorpus(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir)
	writeArtifact(t, dir, "retrieval_corpus.json", Corpus{
		Vectors: [][]float64{{1}, {0}},
		Answers: []string{"одна строка"},
	})

	_, err := LoadArtifacts(dir)
	assert.Error(t, err)
}
