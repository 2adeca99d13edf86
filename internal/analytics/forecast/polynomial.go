package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

// PolynomialForecaster implements least-squares polynomial regression
type PolynomialForecaster struct{}

// NewPolynomialForecaster creates a new polynomial regression forecaster
func NewPolynomialForecaster() *PolynomialForecaster {
	return &PolynomialForecaster{}
}

// Method returns MethodPolynomial
func (f *PolynomialForecaster) Method() Method {
	return MethodPolynomial
}

// Forecast fits a polynomial of config.Degree (reduced to n-1 for short series) and
// evaluates it at x = n+1..n+horizon.
func (f *PolynomialForecaster) Forecast(series Series, horizon int, config Config) (*EstimationResult, error) {
	if err := requireLength(MethodPolynomial, series, 2); err != nil {
		return nil, err
	}

	n := series.Len()
	degree := config.withDefaults().Degree
	if n <= degree+1 {
		degree = n - 1
	}

	// x is mapped onto u in [-1, 1] to keep the normal equations well conditioned
	center := float64(n+1) / 2
	scale := float64(n-1) / 2
	toU := func(x float64) float64 { return (x - center) / scale }

	scaled, err := solveNormalEquations(series, degree, toU)
	if err != nil {
		return nil, err
	}

	fitted := make([]float64, n)
	for i := range series {
		fitted[i] = evalPolynomial(scaled, toU(series.Index(i)))
	}

	predictions := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		predictions[h] = evalPolynomial(scaled, toU(float64(n+h+1)))
	}

	coeffs := unscaleCoefficients(scaled, center, scale)
	params := make(Parameters, 0, len(coeffs)+1)
	params = append(params, Parameter{Name: ParamDegree, Value: float64(degree)})
	for k, c := range coeffs {
		params = append(params, Parameter{Name: coefficientName(k), Value: c})
	}

	return &EstimationResult{
		Forecast:   predictions,
		Parameters: params,
		FitQuality: FitQuality(series, fitted),
		Fitted:     fitted,
	}, nil
}

// solveNormalEquations solves (V^T V) c = V^T y where V[i][k] = u_i^k
func solveNormalEquations(series Series, degree int, toU func(float64) float64) ([]float64, error) {
	n := series.Len()
	cols := degree + 1

	v := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		u := toU(series.Index(i))
		p := 1.0
		for k := 0; k < cols; k++ {
			v.Set(i, k, p)
			p *= u
		}
	}
	y := mat.NewVecDense(n, series.Values())

	var gram mat.Dense
	gram.Mul(v.T(), v)
	var rhs mat.VecDense
	rhs.MulVec(v.T(), y)

	var c mat.VecDense
	if err := c.SolveVec(&gram, &rhs); err != nil {
		return nil, &NumericalError{
			Method: MethodPolynomial,
			Reason: fmt.Sprintf("normal equations are singular or ill-conditioned for degree %d", degree),
		}
	}

	coeffs := make([]float64, cols)
	for k := range coeffs {
		coeffs[k] = c.AtVec(k)
		if !isFinite(coeffs[k]) {
			return nil, &NumericalError{Method: MethodPolynomial, Reason: "polynomial coefficients are not finite"}
		}
	}
	return coeffs, nil
}

// unscaleCoefficients rewrites sum a_k*((x-center)/scale)^k as sum b_j*x^j
func unscaleCoefficients(a []float64, center, scale float64) []float64 {
	b := make([]float64, len(a))
	for k, ak := range a {
		factor := ak / math.Pow(scale, float64(k))
		for j := 0; j <= k; j++ {
			b[j] += factor * float64(combin.Binomial(k, j)) * math.Pow(-center, float64(k-j))
		}
	}
	return b
}

// evalPolynomial evaluates sum c_k*x^k using Horner's scheme
func evalPolynomial(c []float64, x float64) float64 {
	result := 0.0
	for k := len(c) - 1; k >= 0; k-- {
		result = result*x + c[k]
	}
	return result
}

func coefficientName(power int) string {
	return fmt.Sprintf("c%d", power)
}
