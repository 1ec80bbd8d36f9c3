package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"potability/ml"
)

var ErrInvalidValue = errors.New("invalid measurement value")

// Parse builds a measurement from submitted form values. Absent or empty
// fields take their default; present values are clamped into range.
func Parse(values url.Values) (ml.RawMeasurement, error) {
	m := Defaults()
	for _, f := range fields {
		raw := strings.TrimSpace(values.Get(f.Key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return ml.RawMeasurement{}, fmt.Errorf("%w: %s=%q", ErrInvalidValue, f.Key, raw)
		}
		f.set(&m, f.Clamp(v))
	}
	return m, nil
}

// ParseJSON builds a measurement from a JSON object keyed by field key,
// with the same defaulting and clamping rules as Parse.
func ParseJSON(data []byte) (ml.RawMeasurement, error) {
	var values map[string]float64
	if err := json.Unmarshal(data, &values); err != nil {
		return ml.RawMeasurement{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	m := Defaults()
	for _, f := range fields {
		if v, ok := values[f.Key]; ok {
			f.set(&m, f.Clamp(v))
		}
	}
	return m, nil
}
