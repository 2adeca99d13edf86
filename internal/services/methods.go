package services

import (
	"fmt"
	"strings"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
	"github.com/soltixdb/forecastd/internal/models"
)

// methodGuide holds the static description of each method, in presentation order
var methodGuide = []models.MethodInfo{
	{
		Name:       forecast.MethodLinear.String(),
		BestFor:    "Steady, consistent trends",
		HowItWorks: "Fits a straight line through your data",
		UseWhen:    "Data shows clear upward or downward trend",
		Example:    "Steady revenue growth",
	},
	{
		Name:       forecast.MethodMovingAverage.String(),
		BestFor:    "Smoothing out fluctuations",
		HowItWorks: "Averages recent values to predict future",
		UseWhen:    "Data is noisy but stable around a mean",
		Example:    "Sales with random variations",
	},
	{
		Name:       forecast.MethodExponentialSmoothing.String(),
		BestFor:    "Recent trends matter more",
		HowItWorks: "Weights recent data more heavily and damps the trend over the horizon",
		UseWhen:    "Recent changes are more predictive",
		Example:    "Rapidly changing market conditions",
	},
	{
		Name:       forecast.MethodPolynomial.String(),
		BestFor:    "Non-linear patterns",
		HowItWorks: "Fits a curve through your data",
		UseWhen:    "Growth is accelerating or decelerating",
		Example:    "Product adoption curves, market saturation",
	},
	{
		Name:       forecast.MethodSimpleARIMA.String(),
		BestFor:    "Data with autocorrelation",
		HowItWorks: "Uses the previous value to predict the next one (AR(1))",
		UseWhen:    "Values depend on previous values",
		Example:    "Stock prices, economic indicators",
	},
}

// MethodInfos returns the description of every supported method
func MethodInfos() []models.MethodInfo {
	infos := make([]models.MethodInfo, len(methodGuide))
	copy(infos, methodGuide)
	for i, m := range forecast.Methods() {
		infos[i].Title = m.Title()
		infos[i].NeedsPoints = forecast.MinSeriesLength
	}
	return infos
}

// RenderMethodsGuide formats the methods guide as text
func RenderMethodsGuide() string {
	var b strings.Builder
	b.WriteString("**Forecasting Methods Guide**\n")

	for i, info := range MethodInfos() {
		fmt.Fprintf(&b, "\n**%d. %s** (`%s`)\n", i+1, info.Title, info.Name)
		fmt.Fprintf(&b, "- Best for: %s\n", info.BestFor)
		fmt.Fprintf(&b, "- How it works: %s\n", info.HowItWorks)
		fmt.Fprintf(&b, "- Use when: %s\n", info.UseWhen)
		fmt.Fprintf(&b, "- Example: %s\n", info.Example)
	}

	b.WriteString("\n**Tips for Choosing:**\n")
	b.WriteString("- Start with `linear` for simple trends\n")
	b.WriteString("- Use `exponential_smoothing` for recent-weighted forecasts\n")
	b.WriteString("- Try `polynomial` if you see curves in your data\n")
	b.WriteString("- Use `moving_average` to smooth volatility\n")
	b.WriteString("- Choose `simple_arima` for time-dependent patterns\n")
	fmt.Fprintf(&b, "\nEvery method needs at least %d data points and forecasts %d to %d periods.",
		forecast.MinSeriesLength, forecast.MinHorizon, forecast.MaxHorizon)

	return b.String()
}
