package ml

// FeatureCount is the width of the vector the scaler and classifier were fitted on.
const FeatureCount = 12

// RawMeasurement is one snapshot of the nine water-quality readings.
type RawMeasurement struct {
	PH              float64 `json:"ph"`
	Hardness        float64 `json:"hardness"`
	Solids          float64 `json:"solids"`
	Chloramines     float64 `json:"chloramines"`
	Sulfate         float64 `json:"sulfate"`
	Conductivity    float64 `json:"conductivity"`
	OrganicCarbon   float64 `json:"organic_carbon"`
	Trihalomethanes float64 `json:"trihalomethanes"`
	Turbidity       float64 `json:"turbidity"`
}

type DerivedFeatures struct {
	HardnessByConductivity  float64 `json:"hardness_by_conductivity"`
	OrganicCarbonRatio      float64 `json:"organic_carbon_ratio"`
	ChloraminesPerTurbidity float64 `json:"chloramines_per_turbidity"`
}

// FeatureVector is the model input. The element order is fixed by the
// trained artifact and must only change together with a retrained bundle.
type FeatureVector [FeatureCount]float64

func Derive(m RawMeasurement) DerivedFeatures {
	return DerivedFeatures{
		HardnessByConductivity:  CalculateRatio(m.Hardness, m.Conductivity),
		OrganicCarbonRatio:      CalculateRatio(m.OrganicCarbon, m.Solids),
		ChloraminesPerTurbidity: CalculateRatio(m.Chloramines, m.Turbidity),
	}
}

func BuildFeatureVector(m RawMeasurement) FeatureVector {
	d := Derive(m)
	return FeatureVector{
		m.PH,
		m.Hardness,
		m.Solids,
		m.Chloramines,
		m.Sulfate,
		m.Conductivity,
		m.OrganicCarbon,
		m.Trihalomethanes,
		m.Turbidity,
		d.HardnessByConductivity,
		d.OrganicCarbonRatio,
		d.ChloraminesPerTurbidity,
	}
}

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

func FeatureNames() []string {
	return []string{
		"ph",
		"hardness",
		"solids",
		"chloramines",
		"sulfate",
		"conductivity",
		"organic_carbon",
		"trihalomethanes",
		"turbidity",
		"hardness_by_conductivity",
		"organic_carbon_ratio",
		"chloramines_per_turbidity",
	}
}
