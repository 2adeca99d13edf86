package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
	"github.com/soltixdb/forecastd/internal/config"
	forecastgrpc "github.com/soltixdb/forecastd/internal/grpc"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/services"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range newRootCmd().Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"serve", "mcp", "forecast", "methods"} {
		assert.Contains(t, names, want)
	}
}

func TestForecastCmd_Local(t *testing.T) {
	out, err := execute(t, "forecast", "--data", "[100, 200, 300]", "--periods", "5", "--method", "linear")
	require.NoError(t, err)

	assert.Contains(t, out, "**Method:** Linear Regression")
	assert.Contains(t, out, "**Forecasted Values:** 400.00, 500.00, 600.00, 700.00, 800.00")
}

func TestForecastCmd_JSON(t *testing.T) {
	out, err := execute(t, "forecast", "--data", "1 3 2 5 4 6", "--periods", "3", "--method", "poly", "--json")
	require.NoError(t, err)

	var resp models.ForecastResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "polynomial", resp.Method)
	assert.Len(t, resp.Forecast, 3)
}

func TestForecastCmd_ErrorMessage(t *testing.T) {
	_, err := execute(t, "forecast", "--data", "1 2", "--periods", "3")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Data validation error: "), err.Error())
}

func TestForecastCmd_RequiresData(t *testing.T) {
	_, err := execute(t, "forecast", "--periods", "3")
	assert.Error(t, err)
}

func TestMethodsCmd_Local(t *testing.T) {
	out, err := execute(t, "methods")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "**Forecasting Methods Guide**"))
	for _, name := range forecast.MethodNames() {
		assert.Contains(t, out, "`"+name+"`")
	}
}

func TestForecastCmd_GRPC(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	svc := services.NewForecastService(nil, forecast.DefaultConfig(), time.Second, nil)
	server := forecastgrpc.NewForecastServer(lis.Addr().String(), svc, config.AuthConfig{}, nil)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	out, err := execute(t, "forecast", "--data", "100 200 300", "--periods", "2", "--grpc", lis.Addr().String())
	require.NoError(t, err)
	assert.Contains(t, out, "**Forecasted Values:** 400.00, 500.00")

	_, err = execute(t, "forecast", "--data", "100 200 300", "--periods", "0", "--grpc", lis.Addr().String())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Input error: "), err.Error())
}

func TestRunServe_NothingToServe(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.EnableHTTP = false
	cfg.Server.EnableGRPC = false
	cfg.Queue.Enabled = false

	err := runServe(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.EnableHTTP = false
	cfg.Server.GRPCPort = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, cfg, logging.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runServe did not return after cancel")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = lis.Close() }()
	return lis.Addr().(*net.TCPAddr).Port
}
