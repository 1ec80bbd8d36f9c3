package form

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"potability/ml"
)

func TestFieldsMatchFeatureOrder(t *testing.T) {
	names := ml.FeatureNames()
	fs := Fields()
	require.Len(t, fs, 9)
	for i, f := range fs {
		assert.Equal(t, names[i], f.Key)
		assert.LessOrEqual(t, f.Min, f.Default, f.Key)
		assert.LessOrEqual(t, f.Default, f.Max, f.Key)
		assert.Positive(t, f.Step, f.Key)
	}
}

func TestFieldBounds(t *testing.T) {
	want := map[string][4]float64{
		"ph":              {0, 14, 7, 0.1},
		"hardness":        {0, 500, 200, 1},
		"solids":          {0, 50000, 20000, 100},
		"chloramines":     {0, 15, 7, 0.1},
		"sulfate":         {0, 500, 333, 1},
		"conductivity":    {0, 800, 400, 1},
		"organic_carbon":  {0, 30, 15, 0.1},
		"trihalomethanes": {0, 120, 60, 1},
		"turbidity":       {0, 10, 4, 0.1},
	}
	for _, f := range Fields() {
		assert.Equal(t, want[f.Key], [4]float64{f.Min, f.Max, f.Default, f.Step}, f.Key)
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, ml.RawMeasurement{
		PH:              7,
		Hardness:        200,
		Solids:          20000,
		Chloramines:     7,
		Sulfate:         333,
		Conductivity:    400,
		OrganicCarbon:   15,
		Trihalomethanes: 60,
		Turbidity:       4,
	}, Defaults())
}

func TestParse(t *testing.T) {
	values := url.Values{}
	values.Set("ph", "8.5")
	values.Set("solids", " 1200 ")
	values.Set("turbidity", "")

	m, err := Parse(values)
	require.NoError(t, err)
	assert.Equal(t, 8.5, m.PH)
	assert.Equal(t, 1200.0, m.Solids)
	assert.Equal(t, 4.0, m.Turbidity)
	assert.Equal(t, 200.0, m.Hardness)
}

func TestParseClampsToRange(t *testing.T) {
	values := url.Values{}
	values.Set("ph", "20")
	values.Set("hardness", "-5")

	m, err := Parse(values)
	require.NoError(t, err)
	assert.Equal(t, 14.0, m.PH)
	assert.Equal(t, 0.0, m.Hardness)
}

func TestParseRejectsNonNumeric(t *testing.T) {
	for _, raw := range []string{"abc", "NaN", "Inf"} {
		values := url.Values{}
		values.Set("sulfate", raw)
		_, err := Parse(values)
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("%q: expected ErrInvalidValue, got %v", raw, err)
		}
	}
}

func TestParseJSON(t *testing.T) {
	m, err := ParseJSON([]byte(`{"ph": 0, "conductivity": 9000, "unknown": 1}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.PH)
	assert.Equal(t, 800.0, m.Conductivity)
	assert.Equal(t, 333.0, m.Sulfate)

	_, err = ParseJSON([]byte(`{"ph": "seven"}`))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFieldHelpers(t *testing.T) {
	fs := Fields()
	assert.Equal(t, 1, fs[0].Decimals())
	assert.Equal(t, 0, fs[2].Decimals())
	assert.Equal(t, "Hardness (mg/L)", fs[1].Title())
	assert.Equal(t, "pH Level", fs[0].Title())
	assert.Equal(t, 333.0, fs[4].Value(Defaults()))
}

func TestFormatter(t *testing.T) {
	en, err := NewFormatter("en")
	require.NoError(t, err)
	solids := Fields()[2]
	assert.Equal(t, "0 – 50,000", en.Range(solids))

	de, err := NewFormatter("de")
	require.NoError(t, err)
	assert.Equal(t, "0 – 50.000", de.Range(solids))

	_, err = NewFormatter("not a locale!")
	assert.Error(t, err)

	assert.Equal(t, "7.0", FormatInput(7, 1))
	assert.Equal(t, "20000", FormatInput(20000, 0))
}
