package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler centers each feature on its fitted mean and divides by its
// fitted standard deviation.
type StandardScaler struct {
	mean  *mat.VecDense
	scale *mat.VecDense
}

func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, errors.New("standard scaler: mean is empty")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("standard scaler: mean/scale length mismatch (%d != %d)", len(mean), len(scale))
	}
	return &StandardScaler{
		mean:  mat.NewVecDense(len(mean), append([]float64(nil), mean...)),
		scale: mat.NewVecDense(len(scale), handleZeroScale(scale)),
	}, nil
}

func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if err := checkShape(x, s.mean.Len()); err != nil {
		return nil, err
	}
	out := mat.NewVecDense(len(x), nil)
	out.SubVec(mat.NewVecDense(len(x), x), s.mean)
	out.DivElemVec(out, s.scale)
	return out.RawVector().Data, nil
}

func (s *StandardScaler) Dim() int {
	return s.mean.Len()
}

// MinMaxScaler maps each feature from its fitted [min, max] onto a target range.
type MinMaxScaler struct {
	scale  *mat.VecDense
	offset *mat.VecDense
}

func NewMinMaxScaler(dataMin, dataMax []float64, featureRange [2]float64) (*MinMaxScaler, error) {
	if len(dataMin) == 0 {
		return nil, errors.New("minmax scaler: data_min is empty")
	}
	if len(dataMin) != len(dataMax) {
		return nil, fmt.Errorf("minmax scaler: data_min/data_max length mismatch (%d != %d)", len(dataMin), len(dataMax))
	}
	if featureRange[0] >= featureRange[1] {
		return nil, fmt.Errorf("minmax scaler: invalid feature range [%g, %g]", featureRange[0], featureRange[1])
	}

	spans := make([]float64, len(dataMin))
	for i := range dataMin {
		spans[i] = dataMax[i] - dataMin[i]
	}
	spans = handleZeroScale(spans)

	width := featureRange[1] - featureRange[0]
	scale := make([]float64, len(dataMin))
	offset := make([]float64, len(dataMin))
	for i := range dataMin {
		scale[i] = width / spans[i]
		offset[i] = featureRange[0] - dataMin[i]*scale[i]
	}
	return &MinMaxScaler{
		scale:  mat.NewVecDense(len(scale), scale),
		offset: mat.NewVecDense(len(offset), offset),
	}, nil
}

func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if err := checkShape(x, s.scale.Len()); err != nil {
		return nil, err
	}
	out := mat.NewVecDense(len(x), nil)
	out.MulElemVec(mat.NewVecDense(len(x), x), s.scale)
	out.AddVec(out, s.offset)
	return out.RawVector().Data, nil
}

func (s *MinMaxScaler) Dim() int {
	return s.scale.Len()
}
