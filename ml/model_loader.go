package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	ScalerKey = "scaler"
	ModelKey  = "model"
)

var (
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrMissingKey       = errors.New("model artifact missing key")
	ErrUnknownModelType = errors.New("unsupported model type")
)

// Bundle is the fitted scaler/classifier pair. It is never mutated after load.
type Bundle struct {
	Scaler     Scaler
	Classifier Classifier
	ScalerType string
	ModelType  string
	Source     string
}

func NewBundle(scaler Scaler, classifier Classifier) (*Bundle, error) {
	if scaler == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, ScalerKey)
	}
	if classifier == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, ModelKey)
	}
	return &Bundle{Scaler: scaler, Classifier: classifier}, nil
}

type typedObject struct {
	Type string `json:"type"`
}

type standardScalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type minMaxScalerParams struct {
	DataMin      []float64 `json:"data_min"`
	DataMax      []float64 `json:"data_max"`
	FeatureRange []float64 `json:"feature_range"`
}

type logisticParams struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Threshold float64   `json:"threshold"`
}

type treeParams struct {
	NFeatures int        `json:"n_features"`
	Nodes     []TreeNode `json:"nodes"`
}

type forestParams struct {
	NFeatures int          `json:"n_features"`
	Trees     []treeParams `json:"trees"`
}

// LoadBundle reads the artifact at path. The file is a JSON object holding a
// "scaler" and a "model" entry, each tagged with its "type".
func LoadBundle(path string) (*Bundle, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}
	bundle, err := DecodeBundle(payload)
	if err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	bundle.Source = path
	return bundle, nil
}

func DecodeBundle(payload []byte) (*Bundle, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, err
	}
	rawScaler, ok := entries[ScalerKey]
	if !ok || isJSONNull(rawScaler) {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, ScalerKey)
	}
	rawModel, ok := entries[ModelKey]
	if !ok || isJSONNull(rawModel) {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, ModelKey)
	}

	scaler, scalerType, err := decodeScaler(rawScaler)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ScalerKey, err)
	}
	classifier, modelType, err := decodeClassifier(rawModel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ModelKey, err)
	}

	bundle, err := NewBundle(scaler, classifier)
	if err != nil {
		return nil, err
	}
	bundle.ScalerType = scalerType
	bundle.ModelType = modelType
	return bundle, nil
}

func decodeScaler(raw json.RawMessage) (Scaler, string, error) {
	var tag typedObject
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, "", err
	}
	switch tag.Type {
	case "standard":
		var p standardScalerParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, "", err
		}
		s, err := NewStandardScaler(p.Mean, p.Scale)
		return s, tag.Type, err
	case "minmax":
		var p minMaxScalerParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, "", err
		}
		featureRange := [2]float64{0, 1}
		if len(p.FeatureRange) != 0 {
			if len(p.FeatureRange) != 2 {
				return nil, "", errors.New("minmax scaler: feature_range needs two values")
			}
			featureRange = [2]float64{p.FeatureRange[0], p.FeatureRange[1]}
		}
		s, err := NewMinMaxScaler(p.DataMin, p.DataMax, featureRange)
		return s, tag.Type, err
	default:
		return nil, "", fmt.Errorf("%w: scaler %q", ErrUnknownModelType, tag.Type)
	}
}

func decodeClassifier(raw json.RawMessage) (Classifier, string, error) {
	var tag typedObject
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, "", err
	}
	switch tag.Type {
	case "logistic_regression":
		var p logisticParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, "", err
		}
		c, err := NewLogisticRegression(p.Coef, p.Intercept, p.Threshold)
		return c, tag.Type, err
	case "decision_tree":
		var p treeParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, "", err
		}
		c, err := NewDecisionTree(p.Nodes, p.NFeatures)
		return c, tag.Type, err
	case "random_forest":
		var p forestParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, "", err
		}
		trees := make([]*DecisionTree, 0, len(p.Trees))
		for i, tp := range p.Trees {
			nFeatures := tp.NFeatures
			if nFeatures == 0 {
				nFeatures = p.NFeatures
			}
			tree, err := NewDecisionTree(tp.Nodes, nFeatures)
			if err != nil {
				return nil, "", fmt.Errorf("tree %d: %w", i, err)
			}
			trees = append(trees, tree)
		}
		c, err := NewRandomForest(trees)
		return c, tag.Type, err
	default:
		return nil, "", fmt.Errorf("%w: model %q", ErrUnknownModelType, tag.Type)
	}
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
