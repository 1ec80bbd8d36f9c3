package ml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityScaler struct {
	calls int
}

func (s *identityScaler) Transform(x []float64) ([]float64, error) {
	s.calls++
	return x, nil
}

type fixedClassifier struct {
	label Label
	err   error
	seen  [][]float64
}

func (c *fixedClassifier) Predict(x []float64) (Label, error) {
	c.seen = append(c.seen, append([]float64(nil), x...))
	return c.label, c.err
}

func newTestPredictor(t *testing.T, c Classifier, cacheSize int) (*Predictor, *identityScaler) {
	t.Helper()
	scaler := &identityScaler{}
	bundle, err := NewBundle(scaler, c)
	require.NoError(t, err)
	p, err := NewPredictor(bundle, cacheSize)
	require.NoError(t, err)
	return p, scaler
}

func TestPredictorStubbedOutcomes(t *testing.T) {
	for _, want := range []Label{Potable, NotPotable} {
		p, _ := newTestPredictor(t, &fixedClassifier{label: want}, 0)
		got, err := p.PredictMeasurement(RawMeasurement{PH: 7, Hardness: 200})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestPredictorPassesFullVector(t *testing.T) {
	classifier := &fixedClassifier{label: Potable}
	p, _ := newTestPredictor(t, classifier, 0)

	m := RawMeasurement{PH: 7, Hardness: 200, Conductivity: 400}
	_, err := p.PredictMeasurement(m)
	require.NoError(t, err)

	require.Len(t, classifier.seen, 1)
	want := BuildFeatureVector(m)
	assert.Equal(t, want.Slice(), classifier.seen[0])
}

func TestPredictorPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	p, _ := newTestPredictor(t, &fixedClassifier{err: boom}, 8)

	_, err := p.Predict(FeatureVector{})
	assert.ErrorIs(t, err, boom)

	hits, _ := p.CacheStats()
	assert.Zero(t, hits)
}

func TestPredictorRejectsInvalidLabel(t *testing.T) {
	p, _ := newTestPredictor(t, &fixedClassifier{label: 2}, 0)
	_, err := p.Predict(FeatureVector{})
	assert.ErrorIs(t, err, ErrInvalidLabel)
}

func TestPredictorCache(t *testing.T) {
	classifier := &fixedClassifier{label: Potable}
	p, scaler := newTestPredictor(t, classifier, 4)

	v := BuildFeatureVector(RawMeasurement{PH: 7})
	for i := 0; i < 3; i++ {
		label, err := p.Predict(v)
		require.NoError(t, err)
		assert.Equal(t, Potable, label)
	}

	assert.Equal(t, 1, scaler.calls)
	hits, misses := p.CacheStats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestPredictorConsecutiveCallsAreIndependent(t *testing.T) {
	bundle, err := LoadBundle("testdata/bundle.json")
	require.NoError(t, err)
	p, err := NewPredictor(bundle, 16)
	require.NoError(t, err)

	first, err := p.PredictMeasurement(RawMeasurement{PH: 9})
	require.NoError(t, err)
	second, err := p.PredictMeasurement(RawMeasurement{PH: 5})
	require.NoError(t, err)
	again, err := p.PredictMeasurement(RawMeasurement{PH: 9})
	require.NoError(t, err)

	assert.Equal(t, Potable, first)
	assert.Equal(t, NotPotable, second)
	assert.Equal(t, first, again)
}

func TestNewPredictorRequiresBundle(t *testing.T) {
	_, err := NewPredictor(nil, 0)
	assert.Error(t, err)
}
