// Package form describes the nine bounded measurement controls and turns
// submitted values into an ml.RawMeasurement.
package form

import (
	"math"
	"strconv"
	"strings"

	"potability/ml"
)

// Widget selects how a field is rendered.
type Widget string

const (
	WidgetSlider Widget = "slider"
	WidgetNumber Widget = "number"
)

// Field is one bounded numeric control.
type Field struct {
	Key     string
	Label   string
	Unit    string
	Help    string
	Widget  Widget
	Min     float64
	Max     float64
	Default float64
	Step    float64

	set func(*ml.RawMeasurement, float64)
	get func(ml.RawMeasurement) float64
}

var fields = []Field{
	{
		Key: "ph", Label: "pH Level", Widget: WidgetSlider,
		Help: "Measure of how acidic or basic the water is (0-14).",
		Min:  0, Max: 14, Default: 7, Step: 0.1,
		set: func(m *ml.RawMeasurement, v float64) { m.PH = v },
		get: func(m ml.RawMeasurement) float64 { return m.PH },
	},
	{
		Key: "hardness", Label: "Hardness", Unit: "mg/L", Widget: WidgetSlider,
		Help: "Amount of dissolved calcium and magnesium in water.",
		Min:  0, Max: 500, Default: 200, Step: 1,
		set: func(m *ml.RawMeasurement, v float64) { m.Hardness = v },
		get: func(m ml.RawMeasurement) float64 { return m.Hardness },
	},
	{
		Key: "solids", Label: "Solids", Unit: "ppm", Widget: WidgetNumber,
		Help: "Total dissolved solids in the water.",
		Min:  0, Max: 50000, Default: 20000, Step: 100,
		set: func(m *ml.RawMeasurement, v float64) { m.Solids = v },
		get: func(m ml.RawMeasurement) float64 { return m.Solids },
	},
	{
		Key: "chloramines", Label: "Chloramines", Unit: "mg/L", Widget: WidgetSlider,
		Help: "Residual disinfectant in drinking water.",
		Min:  0, Max: 15, Default: 7, Step: 0.1,
		set: func(m *ml.RawMeasurement, v float64) { m.Chloramines = v },
		get: func(m ml.RawMeasurement) float64 { return m.Chloramines },
	},
	{
		Key: "sulfate", Label: "Sulfate", Unit: "mg/L", Widget: WidgetNumber,
		Help: "Sulfur compounds dissolved in water.",
		Min:  0, Max: 500, Default: 333, Step: 1,
		set: func(m *ml.RawMeasurement, v float64) { m.Sulfate = v },
		get: func(m ml.RawMeasurement) float64 { return m.Sulfate },
	},
	{
		Key: "conductivity", Label: "Conductivity", Unit: "μS/cm", Widget: WidgetSlider,
		Help: "Water's ability to conduct electricity.",
		Min:  0, Max: 800, Default: 400, Step: 1,
		set: func(m *ml.RawMeasurement, v float64) { m.Conductivity = v },
		get: func(m ml.RawMeasurement) float64 { return m.Conductivity },
	},
	{
		Key: "organic_carbon", Label: "Organic Carbon", Unit: "mg/L", Widget: WidgetSlider,
		Help: "Measure of organic compounds in water.",
		Min:  0, Max: 30, Default: 15, Step: 0.1,
		set: func(m *ml.RawMeasurement, v float64) { m.OrganicCarbon = v },
		get: func(m ml.RawMeasurement) float64 { return m.OrganicCarbon },
	},
	{
		Key: "trihalomethanes", Label: "Trihalomethanes", Unit: "μg/L", Widget: WidgetSlider,
		Help: "Byproduct of water disinfection.",
		Min:  0, Max: 120, Default: 60, Step: 1,
		set: func(m *ml.RawMeasurement, v float64) { m.Trihalomethanes = v },
		get: func(m ml.RawMeasurement) float64 { return m.Trihalomethanes },
	},
	{
		Key: "turbidity", Label: "Turbidity", Unit: "NTU", Widget: WidgetSlider,
		Help: "Cloudiness of water caused by particles.",
		Min:  0, Max: 10, Default: 4, Step: 0.1,
		set: func(m *ml.RawMeasurement, v float64) { m.Turbidity = v },
		get: func(m ml.RawMeasurement) float64 { return m.Turbidity },
	},
}

// Fields returns the controls in feature-vector order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func Defaults() ml.RawMeasurement {
	var m ml.RawMeasurement
	for _, f := range fields {
		f.set(&m, f.Default)
	}
	return m
}

// Clamp limits v to the field's range, the same way the input control does.
func (f Field) Clamp(v float64) float64 {
	return math.Min(f.Max, math.Max(f.Min, v))
}

// Value reads this field from m.
func (f Field) Value(m ml.RawMeasurement) float64 {
	return f.get(m)
}

// Decimals is the number of fractional digits implied by Step.
func (f Field) Decimals() int {
	s := strconv.FormatFloat(f.Step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// Title is the label with its unit, e.g. "Hardness (mg/L)".
func (f Field) Title() string {
	if f.Unit == "" {
		return f.Label
	}
	return f.Label + " (" + f.Unit + ")"
}
