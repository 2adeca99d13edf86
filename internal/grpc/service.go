package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "forecastd.v1.ForecastService"

// Full method names, used by clients and interceptors
const (
	ForecastMethod       = "/" + ServiceName + "/Forecast"
	ExplainMethodsMethod = "/" + ServiceName + "/ExplainMethods"
)

// ForecastServiceServer is the server API for the forecast service. Requests and
// replies are google.protobuf.Struct so callers need no generated stubs.
type ForecastServiceServer interface {
	Forecast(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExplainMethods(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterForecastServiceServer registers srv with s
func RegisterForecastServiceServer(s grpc.ServiceRegistrar, srv ForecastServiceServer) {
	s.RegisterService(&ForecastServiceDesc, srv)
}

// ForecastServiceDesc describes the forecast service for grpc.Server
var ForecastServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ForecastServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Forecast",
			Handler:    forecastMethodHandler,
		},
		{
			MethodName: "ExplainMethods",
			Handler:    explainMethodsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "forecastd/v1/forecast.proto",
}

func forecastMethodHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForecastServiceServer).Forecast(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ForecastMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForecastServiceServer).Forecast(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func explainMethodsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForecastServiceServer).ExplainMethods(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ExplainMethodsMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForecastServiceServer).ExplainMethods(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
