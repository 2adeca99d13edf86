package forecast

import (
	"fmt"
	"strings"

	"github.com/soltixdb/forecastd/internal/analytics"
)

// Series is an alias to the shared analytics.Series type.
type Series = analytics.Series

// Input bounds enforced by Validate
const (
	MinSeriesLength = 3
	MaxSeriesLength = 10000
	MinHorizon      = 1
	MaxHorizon      = 100
)

// Method identifies one of the supported forecasting procedures.
// The set is closed: every value has exactly one Forecaster.
type Method int

const (
	MethodLinear Method = iota + 1
	MethodMovingAverage
	MethodExponentialSmoothing
	MethodPolynomial
	MethodSimpleARIMA
)

// Methods returns every supported method in presentation order
func Methods() []Method {
	return []Method{
		MethodLinear,
		MethodMovingAverage,
		MethodExponentialSmoothing,
		MethodPolynomial,
		MethodSimpleARIMA,
	}
}

// String returns the canonical method identifier
func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodMovingAverage:
		return "moving_average"
	case MethodExponentialSmoothing:
		return "exponential_smoothing"
	case MethodPolynomial:
		return "polynomial"
	case MethodSimpleARIMA:
		return "simple_arima"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Title returns the human-readable method name used in reports
func (m Method) Title() string {
	switch m {
	case MethodLinear:
		return "Linear Regression"
	case MethodMovingAverage:
		return "Moving Average"
	case MethodExponentialSmoothing:
		return "Exponential Smoothing"
	case MethodPolynomial:
		return "Polynomial Regression"
	case MethodSimpleARIMA:
		return "Simple ARIMA (AR(1))"
	default:
		return m.String()
	}
}

// Valid reports whether m is one of the supported methods
func (m Method) Valid() bool {
	return m >= MethodLinear && m <= MethodSimpleARIMA
}

// MarshalText implements encoding.TextMarshaler
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid method: %d", int(m))
	}
	return []byte(m.String()), nil
}

// ParseMethod maps a canonical identifier to its Method. Names are matched exactly;
// alias handling belongs to callers that accept free-form text.
func ParseMethod(name string) (Method, error) {
	for _, m := range Methods() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, &ValidationError{
		Field:  "method",
		Reason: fmt.Sprintf("unknown method %q (available: %s)", name, strings.Join(MethodNames(), ", ")),
	}
}

// MethodNames returns the canonical identifiers of all methods
func MethodNames() []string {
	methods := Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.String()
	}
	return names
}

// Config holds the tunable constants of the estimators. It is passed by value to every
// call, so overriding a field in one caller never affects another.
type Config struct {
	Alpha      float64 // Smoothing factor for exponential smoothing (0-1]
	Decay      float64 // Trend damping factor for exponential smoothing (0-1)
	WindowSize int     // Window size for the moving average
	Degree     int     // Polynomial degree before automatic reduction
}

// DefaultConfig returns default estimator configuration
func DefaultConfig() Config {
	return Config{
		Alpha:      0.3,
		Decay:      0.5,
		WindowSize: 3,
		Degree:     2,
	}
}

// MaxDegree is the largest polynomial degree accepted in Config
const MaxDegree = 6

// Validate validates the estimator configuration
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %v", c.Alpha)
	}
	if c.Decay <= 0 || c.Decay >= 1 {
		return fmt.Errorf("decay must be in (0, 1), got %v", c.Decay)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window_size must be at least 1, got %d", c.WindowSize)
	}
	if c.Degree < 1 || c.Degree > MaxDegree {
		return fmt.Errorf("degree must be in [1, %d], got %d", MaxDegree, c.Degree)
	}
	return nil
}

// withDefaults replaces out-of-range fields with their defaults
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Alpha <= 0 || c.Alpha > 1 {
		c.Alpha = def.Alpha
	}
	if c.Decay <= 0 || c.Decay >= 1 {
		c.Decay = def.Decay
	}
	if c.WindowSize < 1 {
		c.WindowSize = def.WindowSize
	}
	if c.Degree < 1 || c.Degree > MaxDegree {
		c.Degree = def.Degree
	}
	return c
}

// Parameter is a single named model parameter
type Parameter struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Parameters is an ordered list of model parameters. Order is fixed per method so
// rendered output is stable.
type Parameters []Parameter

// Get returns the value of the named parameter
func (p Parameters) Get(name string) (float64, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return 0, false
}

// EstimationResult is the raw output of a Forecaster
type EstimationResult struct {
	Forecast   []float64
	Parameters Parameters
	// FitQuality is the coefficient of determination, set only for regression methods
	FitQuality *float64
	// Fitted holds in-sample fitted values aligned with the tail of the series
	Fitted []float64
}

// Forecaster interface for all forecasting algorithms
type Forecaster interface {
	// Method returns the method implemented by the forecaster
	Method() Method
	// Forecast fits the model to series and projects horizon steps ahead
	Forecast(series Series, horizon int, config Config) (*EstimationResult, error)
}

// ForecasterFor returns the forecaster for m
func ForecasterFor(m Method) (Forecaster, error) {
	switch m {
	case MethodLinear:
		return NewLinearForecaster(), nil
	case MethodMovingAverage:
		return NewMovingAverageForecaster(), nil
	case MethodExponentialSmoothing:
		return NewExponentialSmoothingForecaster(), nil
	case MethodPolynomial:
		return NewPolynomialForecaster(), nil
	case MethodSimpleARIMA:
		return NewAutoregressiveForecaster(), nil
	default:
		return nil, &ValidationError{Field: "method", Reason: fmt.Sprintf("unsupported method %s", m)}
	}
}

// Request is a validated forecast request. It can only be built by Validate and
// never exposes its series storage.
type Request struct {
	series  Series
	horizon int
	method  Method
}

// Series returns a copy of the validated observations
func (r *Request) Series() Series {
	return analytics.NewSeries(r.series)
}

// Len returns the number of observations
func (r *Request) Len() int {
	return r.series.Len()
}

// Horizon returns the number of periods to forecast
func (r *Request) Horizon() int {
	return r.horizon
}

// Method returns the selected method
func (r *Request) Method() Method {
	return r.method
}

// Metrics holds in-sample accuracy metrics
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	MAPE float64 `json:"mape"` // Mean Absolute Percentage Error
}

// ForecastResponse is the complete result handed back to adapters
type ForecastResponse struct {
	Method      Method     `json:"method"`
	Series      []float64  `json:"series"`
	Horizon     int        `json:"horizon"`
	Forecast    []float64  `json:"forecast"`
	Explanation string     `json:"explanation"`
	Equation    string     `json:"equation"`
	Parameters  Parameters `json:"parameters"`
	FitQuality  *float64   `json:"fit_quality,omitempty"`
	Metrics     *Metrics   `json:"metrics,omitempty"`
}

// Evaluate runs a validated request through the selected forecaster and assembles the response
func Evaluate(req *Request, config Config) (*ForecastResponse, error) {
	if req == nil {
		return nil, &ValidationError{Field: "request", Reason: "request is required"}
	}

	forecaster, err := ForecasterFor(req.method)
	if err != nil {
		return nil, err
	}

	result, err := forecaster.Forecast(req.Series(), req.horizon, config.withDefaults())
	if err != nil {
		return nil, err
	}
	if len(result.Forecast) != req.horizon {
		return nil, &NumericalError{
			Method: req.method,
			Reason: fmt.Sprintf("produced %d values for horizon %d", len(result.Forecast), req.horizon),
		}
	}
	for _, v := range result.Forecast {
		if !isFinite(v) {
			return nil, &NumericalError{Method: req.method, Reason: "forecast overflowed to a non-finite value"}
		}
	}

	diagnostics := ComputeDiagnostics(req.series, result)
	return Assemble(req, result, diagnostics), nil
}

// Run validates raw inputs and evaluates them
func Run(values []float64, horizon int, method string, config Config) (*ForecastResponse, error) {
	req, err := Validate(values, horizon, method)
	if err != nil {
		return nil, err
	}
	return Evaluate(req, config)
}
