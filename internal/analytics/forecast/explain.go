package forecast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parameter names reported by the estimators
const (
	ParamSlope          = "slope"
	ParamIntercept      = "intercept"
	ParamWindow         = "window"
	ParamRecentAverage  = "recent_average"
	ParamAlpha          = "alpha"
	ParamTrend          = "trend"
	ParamDecay          = "decay"
	ParamLevel          = "level"
	ParamDegree         = "degree"
	ParamPhi            = "phi"
	ParamConstant       = "constant"
	ParamMeanDifference = "mean_difference"
	ParamStdDifference  = "std_difference"
)

// Explain renders a deterministic natural-language description of a fitted model
func Explain(m Method, params Parameters, d Diagnostics) string {
	switch m {
	case MethodLinear:
		slope, _ := params.Get(ParamSlope)
		direction := "increases"
		if slope < 0 {
			direction = "decreases"
		}
		return fmt.Sprintf("Linear trend projection with slope %s. Each period %s by %s units.",
			fixed(slope, 4), direction, fixed(math.Abs(slope), 4))

	case MethodMovingAverage:
		window, _ := params.Get(ParamWindow)
		avg, _ := params.Get(ParamRecentAverage)
		w := int(window)
		return fmt.Sprintf("Using %d-period moving average. Forecast is based on average of last %d values: %s. "+
			"Later periods roll the window over earlier forecasts.", w, w, fixed(avg, 2))

	case MethodExponentialSmoothing:
		alpha, _ := params.Get(ParamAlpha)
		trend, _ := params.Get(ParamTrend)
		decay, _ := params.Get(ParamDecay)
		return fmt.Sprintf("Exponential smoothing with α=%s. Recent values weighted more heavily. "+
			"Trend: %s per period, damped by a factor of %s each step ahead.",
			short(alpha), fixed(trend, 4), short(decay))

	case MethodPolynomial:
		degree, _ := params.Get(ParamDegree)
		text := fmt.Sprintf("Polynomial of degree %d captures non-linear patterns.", int(degree))
		if d.FitQuality != nil {
			text += fmt.Sprintf(" R²=%s", fixed(*d.FitQuality, 4))
		}
		return text

	case MethodSimpleARIMA:
		phi, _ := params.Get(ParamPhi)
		text := fmt.Sprintf("Autoregressive model with coefficient φ=%s. ", fixed(phi, 4))
		switch {
		case Divergent(phi):
			text += "Warning: |φ| > 1, so the sequence is potentially divergent and forecasts move away from the data at a growing rate."
		case math.Abs(phi) < 1:
			text += "Mean-reverting behavior."
		default:
			text += "Trending (unit root) behavior."
		}
		return text

	default:
		return ""
	}
}

// Equation renders the fitted model as a formula
func Equation(m Method, params Parameters) string {
	switch m {
	case MethodLinear:
		slope, _ := params.Get(ParamSlope)
		intercept, _ := params.Get(ParamIntercept)
		return fmt.Sprintf("y = %sx %s", fixed(slope, 4), signed(intercept, 4))

	case MethodMovingAverage:
		window, _ := params.Get(ParamWindow)
		return movingAverageEquation(int(window))

	case MethodExponentialSmoothing:
		alpha, _ := params.Get(ParamAlpha)
		level, _ := params.Get(ParamLevel)
		trend, _ := params.Get(ParamTrend)
		decay, _ := params.Get(ParamDecay)
		return fmt.Sprintf("S_t = %s * x_t + %s * S_{t-1}; y_{n+h} = %s %s * Σ(k=1..h) %s^k",
			fixed(alpha, 4), fixed(1-alpha, 4), fixed(level, 4), signed(trend, 4), fixed(decay, 4))

	case MethodPolynomial:
		degree, _ := params.Get(ParamDegree)
		return polynomialEquation(params, int(degree))

	case MethodSimpleARIMA:
		phi, _ := params.Get(ParamPhi)
		constant, _ := params.Get(ParamConstant)
		return fmt.Sprintf("y_t = %s + %s * y_{t-1}", fixed(constant, 4), fixed(phi, 4))

	default:
		return ""
	}
}

func movingAverageEquation(window int) string {
	if window < 1 {
		return ""
	}
	terms := make([]string, 0, window)
	if window <= 4 {
		for k := 0; k < window; k++ {
			terms = append(terms, lagTerm(k))
		}
	} else {
		terms = append(terms, lagTerm(0), lagTerm(1), "...", lagTerm(window-1))
	}
	return fmt.Sprintf("y_{t+1} = (%s) / %d", strings.Join(terms, " + "), window)
}

func lagTerm(k int) string {
	if k == 0 {
		return "y_t"
	}
	return fmt.Sprintf("y_{t-%d}", k)
}

func polynomialEquation(params Parameters, degree int) string {
	var b strings.Builder
	b.WriteString("y = ")
	for k := degree; k >= 0; k-- {
		c, _ := params.Get(coefficientName(k))
		if k == degree {
			b.WriteString(fixed(c, 4))
		} else {
			b.WriteString(" ")
			b.WriteString(signed(c, 4))
		}
		switch k {
		case 0:
		case 1:
			b.WriteString("x")
		default:
			b.WriteString("x^")
			b.WriteString(strconv.Itoa(k))
		}
	}
	return b.String()
}

// fixed formats v with prec decimals and never renders negative zero
func fixed(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.TrimLeft(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

// signed formats v as "+ |v|" or "- |v|"
func signed(v float64, prec int) string {
	s := fixed(v, prec)
	if strings.HasPrefix(s, "-") {
		return "- " + s[1:]
	}
	return "+ " + s
}

func short(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
