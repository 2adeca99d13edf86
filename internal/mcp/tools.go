package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/services"
)

const forecastDataDescription = `Perform time series forecasting on numerical data.

This tool analyzes a sequence of numbers and projects future values using various statistical methods.
Useful for revenue projections, trend analysis, and time series prediction.

Required inputs:
- data: Array of at least 3 numbers (e.g., "[300, 400, 500]" or "300 400 500")
- periods: Number of future periods to forecast (1-100)
- method: Forecasting method to use

Available methods:
- "linear": Linear regression trend line
- "moving_average": Moving average smoothing
- "exponential_smoothing": Exponentially weighted average with a damped trend
- "polynomial": Polynomial regression for non-linear trends
- "simple_arima": Autoregressive AR(1) model

Examples:
- Revenue: "[1000, 1200, 1400]", 3 periods, "linear"
- Sales: "50 55 60 58 65", 6 periods, "exponential_smoothing"`

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolForecastData,
		Description: forecastDataDescription,
	}, s.handleForecastData)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolExplainMethods,
		Description: "Explains the available forecasting methods and when to use each one",
	}, s.handleExplainMethods)
}

func (s *Server) handleForecastData(ctx context.Context, req *mcp.CallToolRequest, args models.ForecastRequest) (*mcp.CallToolResult, any, error) {
	ctx = logging.WithRequestID(ctx, uuid.New().String())
	ctx = logging.WithTransport(ctx, services.TransportMCP)

	text, err := s.service.ForecastText(ctx, &args, services.TransportMCP)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: err != nil,
	}, nil, nil
}

func (s *Server) handleExplainMethods(ctx context.Context, req *mcp.CallToolRequest, _ models.ExplainMethodsRequest) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: s.service.ExplainMethods().Guide}},
	}, nil, nil
}
