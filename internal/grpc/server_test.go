package grpc

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
	"github.com/soltixdb/forecastd/internal/config"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/services"
)

const testAPIKey = "test-api-key-0123456789abcdefghijklmnop"

func startServer(t *testing.T, auth config.AuthConfig) *bufconn.Listener {
	t.Helper()

	svc := services.NewForecastService(nil, forecast.DefaultConfig(), time.Second, nil)
	server := NewForecastServer("bufnet", svc, auth, nil)

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	return lis
}

func newTestClient(t *testing.T, lis *bufconn.Listener, apiKey string) *Client {
	t.Helper()

	client, err := NewClient("passthrough:///bufnet", apiKey,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestNewForecastServer(t *testing.T) {
	server := NewForecastServer("localhost:50051", nil, config.AuthConfig{}, nil)

	assert.Equal(t, "localhost:50051", server.address)
	assert.NotNil(t, server.logger)
	assert.NotNil(t, server.forecastHandler)
	assert.Nil(t, server.grpcServer, "grpcServer is created on Start")
}

func TestForecastServer_StopWithoutStart(t *testing.T) {
	server := NewForecastServer("localhost:50051", nil, config.AuthConfig{}, nil)
	assert.NotPanics(t, server.Stop)
}

func TestForecastServer_StartStopsOnCancel(t *testing.T) {
	svc := services.NewForecastService(nil, forecast.DefaultConfig(), time.Second, nil)
	server := NewForecastServer("127.0.0.1:0", svc, config.AuthConfig{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestClient_Forecast(t *testing.T) {
	client := newTestClient(t, startServer(t, config.AuthConfig{}), "")

	resp, err := client.Forecast(context.Background(), &models.ForecastRequest{
		Data:    "[100, 200, 300]",
		Periods: "5",
		Method:  "linear",
	})
	require.NoError(t, err)

	assert.Equal(t, "linear", resp.Method)
	assert.Equal(t, "Linear Regression", resp.MethodTitle)
	assert.Equal(t, 5, resp.Periods)
	require.Len(t, resp.Forecast, 5)
	for i, want := range []float64{400, 500, 600, 700, 800} {
		assert.InDelta(t, want, resp.Forecast[i], 1e-9)
	}
	require.NotNil(t, resp.FitQuality)
	assert.InDelta(t, 1.0, *resp.FitQuality, 1e-9)
	assert.NotEmpty(t, resp.RequestID)
	assert.True(t, strings.HasPrefix(resp.Report, "**Forecasting Results**"))
}

func TestClient_ExplainMethods(t *testing.T) {
	client := newTestClient(t, startServer(t, config.AuthConfig{}), "")

	resp, err := client.ExplainMethods(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Methods, len(forecast.Methods()))
	assert.Equal(t, "linear", resp.Methods[0].Name)
	assert.Contains(t, resp.Guide, "**Forecasting Methods Guide**")
}

func TestClient_Health(t *testing.T) {
	client := newTestClient(t, startServer(t, config.AuthConfig{Enabled: true, APIKeys: []string{testAPIKey}}), "")

	serving, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, serving)
}

func TestForecast_ErrorCodes(t *testing.T) {
	client := newTestClient(t, startServer(t, config.AuthConfig{}), "")

	tests := []struct {
		name   string
		req    *models.ForecastRequest
		code   codes.Code
		prefix string
	}{
		{"short series", &models.ForecastRequest{Data: "1 2", Periods: "1", Method: "linear"}, codes.InvalidArgument, "Data validation error: "},
		{"bad horizon", &models.ForecastRequest{Data: "1 2 3", Periods: "0", Method: "linear"}, codes.InvalidArgument, "Input error: "},
		{"unknown method", &models.ForecastRequest{Data: "1 2 3", Periods: "1", Method: "prophet"}, codes.InvalidArgument, "Input error: "},
		{"constant AR", &models.ForecastRequest{Data: "4 4 4 4", Periods: "1", Method: "simple_arima"}, codes.FailedPrecondition, "Forecasting error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Forecast(context.Background(), tt.req)
			require.Error(t, err)

			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.True(t, strings.HasPrefix(st.Message(), tt.prefix), st.Message())
		})
	}
}

func TestForecast_Auth(t *testing.T) {
	lis := startServer(t, config.AuthConfig{Enabled: true, APIKeys: []string{testAPIKey}})
	req := &models.ForecastRequest{Data: "1 2 3", Periods: "1", Method: "linear"}

	t.Run("missing key", func(t *testing.T) {
		_, err := newTestClient(t, lis, "").Forecast(context.Background(), req)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := newTestClient(t, lis, "not-the-key").Forecast(context.Background(), req)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid key", func(t *testing.T) {
		resp, err := newTestClient(t, lis, testAPIKey).Forecast(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, resp.Forecast, 1)
	})
}

func TestRequestFromStruct(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
		want   models.ForecastRequest
	}{
		{
			name:   "strings",
			fields: map[string]interface{}{"data": "1 2 3", "periods": "2", "method": "linear"},
			want:   models.ForecastRequest{Data: "1 2 3", Periods: "2", Method: "linear"},
		},
		{
			name:   "native values",
			fields: map[string]interface{}{"data": []interface{}{1.5, 2, 3}, "periods": 4, "method": "poly"},
			want:   models.ForecastRequest{Data: "1.5, 2, 3", Periods: "4", Method: "poly"},
		},
		{
			name:   "missing fields",
			fields: map[string]interface{}{},
			want:   models.ForecastRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := structpb.NewStruct(tt.fields)
			require.NoError(t, err)

			got, err := requestFromStruct(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestRequestFromStruct_NonNumericList(t *testing.T) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"data": []interface{}{1.0, "two", 3.0},
	})
	require.NoError(t, err)

	_, err = requestFromStruct(in)
	assert.ErrorIs(t, err, forecast.ErrValidation)
}
