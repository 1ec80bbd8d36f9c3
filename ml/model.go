package ml

import (
	"errors"
	"fmt"
)

type Label int

const (
	NotPotable Label = 0
	Potable    Label = 1
)

func (l Label) String() string {
	switch l {
	case Potable:
		return "potable"
	case NotPotable:
		return "not_potable"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

var (
	ErrShapeMismatch = errors.New("feature shape mismatch")
	ErrInvalidLabel  = errors.New("classifier returned a label outside {0,1}")
)

// Scaler is a fitted normalization applied before classification.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
}

// Classifier is a fitted binary decision function over a scaled vector.
type Classifier interface {
	Predict(x []float64) (Label, error)
}

func checkShape(x []float64, want int) error {
	if len(x) != want {
		return fmt.Errorf("%w: got %d features, fitted on %d", ErrShapeMismatch, len(x), want)
	}
	return nil
}
