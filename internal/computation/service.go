package computation

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "calculator.Compute"

const (
	evaluateMethod    = "/" + serviceName + "/Evaluate"
	freeProcessMethod = "/" + serviceName + "/FreeProcess"
)

const (
	postfixField = "postfix"
	strictField  = "strict"
)

// NewEvaluateRequest packs the arguments of Evaluate into a protobuf Struct.
func NewEvaluateRequest(postfix string, strict bool) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		postfixField: structpb.NewStringValue(postfix),
		strictField:  structpb.NewBoolValue(strict),
	}}
}

func evaluateArgs(req *structpb.Struct) (postfix string, strict bool) {
	fields := req.GetFields()
	return fields[postfixField].GetStringValue(), fields[strictField].GetBoolValue()
}

// ComputeServer is answered with a DoubleValue by Evaluate, protobuf doubles
// keep Inf and NaN.
type ComputeServer interface {
	Evaluate(context.Context, *structpb.Struct) (*wrapperspb.DoubleValue, error)
	FreeProcess(context.Context, *emptypb.Empty) (*wrapperspb.Int32Value, error)
}

func RegisterComputeServer(s grpc.ServiceRegistrar, srv ComputeServer) {
	s.RegisterService(&computeServiceDesc, srv)
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ComputeServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: evaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ComputeServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func freeProcessHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ComputeServer).FreeProcess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: freeProcessMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ComputeServer).FreeProcess(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var computeServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ComputeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "FreeProcess", Handler: freeProcessHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "computation/service.go",
}
