package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/soltixdb/forecastd/internal/analytics/forecast"
	"github.com/soltixdb/forecastd/internal/logging"
	"github.com/soltixdb/forecastd/internal/models"
	"github.com/soltixdb/forecastd/internal/services"
	"github.com/soltixdb/forecastd/internal/utils"
)

// ForecastServiceHandler implements ForecastServiceServer on top of the forecast service
type ForecastServiceHandler struct {
	service *services.ForecastService
	logger  *logging.Logger
}

// NewForecastServiceHandler creates a new handler
func NewForecastServiceHandler(service *services.ForecastService, logger *logging.Logger) *ForecastServiceHandler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ForecastServiceHandler{
		service: service,
		logger:  logger,
	}
}

// Forecast runs forecast_data. The request struct carries "data" (a string or a
// list of numbers), "periods" (a string or a number) and "method".
func (h *ForecastServiceHandler) Forecast(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	requestID := uuid.New().String()
	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithTransport(ctx, services.TransportGRPC)

	req, err := requestFromStruct(in)
	if err != nil {
		h.logger.WithContext(ctx).Warn("Malformed forecast request", "error", err)
		return nil, statusFromError(err)
	}

	resp, err := h.service.Forecast(ctx, req, services.TransportGRPC)
	if err != nil {
		return nil, statusFromError(err)
	}

	out := models.NewForecastResponse(resp, services.RenderReport(resp))
	out.RequestID = requestID
	return toStruct(out)
}

// ExplainMethods runs explain_methods; the request struct is ignored
func (h *ForecastServiceHandler) ExplainMethods(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(h.service.ExplainMethods())
}

// requestFromStruct flattens the struct fields into the text form the service parses
func requestFromStruct(in *structpb.Struct) (*models.ForecastRequest, error) {
	fields := in.GetFields()

	data, err := dataText(fields["data"])
	if err != nil {
		return nil, err
	}

	return &models.ForecastRequest{
		Data:    data,
		Periods: scalarText(fields["periods"]),
		Method:  fields["method"].GetStringValue(),
	}, nil
}

func dataText(v *structpb.Value) (string, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_ListValue:
		values, err := utils.ToFloat64Slice(kind.ListValue.AsSlice())
		if err != nil {
			return "", &forecast.ValidationError{Field: "data", Reason: fmt.Sprintf("could not parse data: %v", err)}
		}
		return utils.FormatFloats(values), nil
	default:
		return scalarText(v), nil
	}
}

func scalarText(v *structpb.Value) string {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
	default:
		return ""
	}
}

// toStruct converts a JSON-tagged value into a google.protobuf.Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// statusFromError maps service error codes onto gRPC status codes. The status
// message is the same user-facing text the other transports return.
func statusFromError(err error) error {
	svcErr := services.FromError(err)

	code := codes.Internal
	switch svcErr.Code {
	case services.CodeInvalidInput:
		code = codes.InvalidArgument
	case services.CodeInsufficientData, services.CodeNumericalError:
		code = codes.FailedPrecondition
	case services.CodeTimeout:
		code = codes.DeadlineExceeded
	}

	return status.Error(code, svcErr.Message)
}
