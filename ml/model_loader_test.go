package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model_and_scaler.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBundle(t *testing.T) {
	path := filepath.Join("testdata", "bundle.json")
	bundle, err := LoadBundle(path)
	require.NoError(t, err)

	assert.Equal(t, "standard", bundle.ScalerType)
	assert.Equal(t, "logistic_regression", bundle.ModelType)
	assert.Equal(t, path, bundle.Source)

	predictor, err := NewPredictor(bundle, 0)
	require.NoError(t, err)

	label, err := predictor.PredictMeasurement(RawMeasurement{PH: 8})
	require.NoError(t, err)
	assert.Equal(t, Potable, label)

	label, err = predictor.PredictMeasurement(RawMeasurement{PH: 6})
	require.NoError(t, err)
	assert.Equal(t, NotPotable, label)
}

func TestLoadBundleMissingFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestLoadBundleMissingKeys(t *testing.T) {
	scalerOnly := writeArtifact(t, `{"scaler": {"type": "standard", "mean": [0], "scale": [1]}}`)
	_, err := LoadBundle(scalerOnly)
	assert.ErrorIs(t, err, ErrMissingKey)

	modelOnly := writeArtifact(t, `{"model": {"type": "logistic_regression", "coef": [1]}}`)
	_, err = LoadBundle(modelOnly)
	assert.ErrorIs(t, err, ErrMissingKey)

	nullModel := writeArtifact(t, `{"scaler": {"type": "standard", "mean": [0], "scale": [1]}, "model": null}`)
	_, err = LoadBundle(nullModel)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestLoadBundleCorruptContent(t *testing.T) {
	_, err := LoadBundle(writeArtifact(t, "\x80\x04\x95 not json"))
	assert.Error(t, err)

	_, err = LoadBundle(writeArtifact(t, `{"scaler": {"type": "standard", "mean": [0, 1], "scale": [1]}, "model": {"type": "logistic_regression", "coef": [1, 1]}}`))
	assert.Error(t, err)
}

func TestLoadBundleUnknownType(t *testing.T) {
	_, err := LoadBundle(writeArtifact(t, `{"scaler": {"type": "robust"}, "model": {"type": "logistic_regression", "coef": [1]}}`))
	assert.ErrorIs(t, err, ErrUnknownModelType)

	_, err = LoadBundle(writeArtifact(t, `{"scaler": {"type": "standard", "mean": [0], "scale": [1]}, "model": {"type": "svm"}}`))
	assert.ErrorIs(t, err, ErrUnknownModelType)
}

func TestDecodeBundleTreeModels(t *testing.T) {
	bundle, err := DecodeBundle([]byte(`{
		"scaler": {"type": "minmax", "data_min": [0], "data_max": [14]},
		"model": {"type": "decision_tree", "nodes": [
			{"feature_idx": 0, "threshold": 0.5, "left_child": 1, "right_child": 2},
			{"feature_idx": -1, "left_child": -1, "right_child": -1, "class_label": 0, "is_leaf": true},
			{"feature_idx": -1, "left_child": -1, "right_child": -1, "class_label": 1, "is_leaf": true}
		]}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "minmax", bundle.ScalerType)
	assert.Equal(t, "decision_tree", bundle.ModelType)

	forest, err := DecodeBundle([]byte(`{
		"scaler": {"type": "standard", "mean": [0], "scale": [1]},
		"model": {"type": "random_forest", "n_features": 1, "trees": [
			{"nodes": [{"feature_idx": -1, "class_label": 1, "is_leaf": true}]},
			{"nodes": [{"feature_idx": -1, "class_label": 1, "is_leaf": true}]},
			{"nodes": [{"feature_idx": -1, "class_label": 0, "is_leaf": true}]}
		]}
	}`))
	require.NoError(t, err)

	label, err := forest.Classifier.Predict([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, Potable, label)
}

func TestLoadBundleDefersShapeCheckToInference(t *testing.T) {
	path := writeArtifact(t, `{"scaler": {"type": "standard", "mean": [0, 0, 0], "scale": [1, 1, 1]}, "model": {"type": "logistic_regression", "coef": [1, 1, 1]}}`)
	bundle, err := LoadBundle(path)
	require.NoError(t, err)

	predictor, err := NewPredictor(bundle, 0)
	require.NoError(t, err)

	_, err = predictor.PredictMeasurement(RawMeasurement{})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
