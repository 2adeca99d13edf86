package models

import (
	"errors"
	"testing"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeries_Formats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []float64
	}{
		{"bracketed", "[100, 200, 300]", []float64{100, 200, 300}},
		{"bracketed with padding", "  [1.5,2.5 , 3]  ", []float64{1.5, 2.5, 3}},
		{"comma separated", "100,200,300", []float64{100, 200, 300}},
		{"whitespace separated", "300 400\t500\n600", []float64{300, 400, 500, 600}},
		{"mixed separators", "1, 2 3,,4", []float64{1, 2, 3, 4}},
		{"negative and exponent", "-1.5 2e3 +7", []float64{-1.5, 2000, 7}},
		{"empty", "", []float64{}},
		{"empty brackets", "[]", []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeries(tt.input)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestParseSeries_Errors(t *testing.T) {
	for _, input := range []string{"[1, 2, \"x\"]", "[1, 2", "1 two 3", "[[1], [2]]"} {
		_, err := ParseSeries(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, forecast.ErrValidation), input)
	}
}

func TestParseSeries_RejectsNonNumericJSONEntries(t *testing.T) {
	tests := []struct {
		input    string
		position string
	}{
		{"[1, null, 3]", "position 2"},
		{"[100, 200, null]", "position 3"},
		{"[true, 2, 3]", "position 1"},
		{"[1, \"2\", 3]", "position 2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			values, err := ParseSeries(tt.input)
			require.Error(t, err)
			assert.Nil(t, values)

			var vErr *forecast.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "data", vErr.Field)
			assert.Contains(t, vErr.Reason, tt.position)
		})
	}
}

func TestParseSeries_NonFiniteTextIsLeftToValidation(t *testing.T) {
	values, err := ParseSeries("1 2 NaN")
	require.NoError(t, err)

	_, err = forecast.Validate(values, 1, "linear")
	assert.ErrorIs(t, err, forecast.ErrValidation)
}

func TestParseHorizon(t *testing.T) {
	n, err := ParseHorizon(" 5 ")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = ParseHorizon("0")
	require.NoError(t, err, "range checks belong to the engine")
	assert.Equal(t, 0, n)

	for _, input := range []string{"", "five", "2.5"} {
		_, err := ParseHorizon(input)
		assert.ErrorIs(t, err, forecast.ErrValidation, input)
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := map[string]string{
		"linear":                 "linear",
		"  Linear ":              "linear",
		"Moving Average":         "moving_average",
		"exponential":            "exponential_smoothing",
		"EXPONENTIAL SMOOTHING":  "exponential_smoothing",
		"poly":                   "polynomial",
		"AR":                     "simple_arima",
		"arima":                  "simple_arima",
		"simple arima":           "simple_arima",
		"holt_winters":           "holt_winters",
		"Unknown Method":         "unknown method",
		"exponential_smoothing ": "exponential_smoothing",
		"\tsimple_arima\n":       "simple_arima",
		"moving_average":         "moving_average",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeMethod(input), input)
	}
}

func TestMethodAliases_CoverEveryMethod(t *testing.T) {
	aliases := MethodAliases()
	for _, name := range forecast.MethodNames() {
		assert.Contains(t, aliases, name)
	}
	assert.IsIncreasing(t, aliases)
}
