package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const defaultDecisionThreshold = 0.5

type LogisticRegression struct {
	coef      *mat.VecDense
	intercept float64
	threshold float64
}

func NewLogisticRegression(coef []float64, intercept, threshold float64) (*LogisticRegression, error) {
	if len(coef) == 0 {
		return nil, errors.New("logistic regression: coef is empty")
	}
	if threshold == 0 {
		threshold = defaultDecisionThreshold
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("logistic regression: threshold %g outside (0, 1)", threshold)
	}
	return &LogisticRegression{
		coef:      mat.NewVecDense(len(coef), append([]float64(nil), coef...)),
		intercept: intercept,
		threshold: threshold,
	}, nil
}

func (lr *LogisticRegression) Probability(x []float64) (float64, error) {
	if err := checkShape(x, lr.coef.Len()); err != nil {
		return 0, err
	}
	z := mat.Dot(lr.coef, mat.NewVecDense(len(x), x)) + lr.intercept
	return sigmoid(z), nil
}

func (lr *LogisticRegression) Predict(x []float64) (Label, error) {
	p, err := lr.Probability(x)
	if err != nil {
		return NotPotable, err
	}
	if p > lr.threshold {
		return Potable, nil
	}
	return NotPotable, nil
}
