package calculator

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName полное имя gRPC-сервиса
const ServiceName = "showcase.Calculator"

// Интерфейс для CalculatorClient
type CalculatorClient interface {
	Add(ctx context.Context, in *IntPair, opts ...grpc.CallOption) (*IntResult, error)
	Subtract(ctx context.Context, in *IntPair, opts ...grpc.CallOption) (*IntResult, error)
	Divide(ctx context.Context, in *DecimalPair, opts ...grpc.CallOption) (*DecimalResult, error)
	Sqrt(ctx context.Context, in *SqrtRequest, opts ...grpc.CallOption) (*SqrtResult, error)
}

// Интерфейс для CalculatorServer
type CalculatorServer interface {
	Add(ctx context.Context, in *IntPair) (*IntResult, error)
	Subtract(ctx context.Context, in *IntPair) (*IntResult, error)
	Divide(ctx context.Context, in *DecimalPair) (*DecimalResult, error)
	Sqrt(ctx context.Context, in *SqrtRequest) (*SqrtResult, error)
}

// Базовая реализация CalculatorServer
type UnimplementedCalculatorServer struct{}

func (UnimplementedCalculatorServer) Add(ctx context.Context, in *IntPair) (*IntResult, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Add not implemented")
}

func (UnimplementedCalculatorServer) Subtract(ctx context.Context, in *IntPair) (*IntResult, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Subtract not implemented")
}

func (UnimplementedCalculatorServer) Divide(ctx context.Context, in *DecimalPair) (*DecimalResult, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Divide not implemented")
}

func (UnimplementedCalculatorServer) Sqrt(ctx context.Context, in *SqrtRequest) (*SqrtResult, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Sqrt not implemented")
}

// RegisterCalculatorServer регистрирует сервер Calculator в gRPC
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&calculatorServiceDesc, srv)
}

var calculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Add", Handler: unaryHandler("Add", func(srv CalculatorServer, ctx context.Context, in *IntPair) (interface{}, error) {
			return srv.Add(ctx, in)
		})},
		{MethodName: "Subtract", Handler: unaryHandler("Subtract", func(srv CalculatorServer, ctx context.Context, in *IntPair) (interface{}, error) {
			return srv.Subtract(ctx, in)
		})},
		{MethodName: "Divide", Handler: unaryHandler("Divide", func(srv CalculatorServer, ctx context.Context, in *DecimalPair) (interface{}, error) {
			return srv.Divide(ctx, in)
		})},
		{MethodName: "Sqrt", Handler: unaryHandler("Sqrt", func(srv CalculatorServer, ctx context.Context, in *SqrtRequest) (interface{}, error) {
			return srv.Sqrt(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator.json",
}

// unaryHandler собирает grpc.MethodDesc.Handler для метода с запросом типа Req
func unaryHandler[Req any](method string, call func(CalculatorServer, context.Context, *Req) (interface{}, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalculatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CalculatorServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// NewCalculatorClient создает клиента для сервиса Calculator
func NewCalculatorClient(cc grpc.ClientConnInterface) CalculatorClient {
	return &calculatorClient{cc: cc}
}

type calculatorClient struct {
	cc grpc.ClientConnInterface
}

func (c *calculatorClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *calculatorClient) Add(ctx context.Context, in *IntPair, opts ...grpc.CallOption) (*IntResult, error) {
	out := new(IntResult)
	if err := c.invoke(ctx, "Add", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calculatorClient) Subtract(ctx context.Context, in *IntPair, opts ...grpc.CallOption) (*IntResult, error) {
	out := new(IntResult)
	if err := c.invoke(ctx, "Subtract", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calculatorClient) Divide(ctx context.Context, in *DecimalPair, opts ...grpc.CallOption) (*DecimalResult, error) {
	out := new(DecimalResult)
	if err := c.invoke(ctx, "Divide", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calculatorClient) Sqrt(ctx context.Context, in *SqrtRequest, opts ...grpc.CallOption) (*SqrtResult, error) {
	out := new(SqrtResult)
	if err := c.invoke(ctx, "Sqrt", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// IntPair операнды сложения и вычитания
type IntPair struct {
	A int32 `json:"a"`
	B int32 `json:"b"`
}

// IntResult результат целочисленной операции
type IntResult struct {
	Result int32 `json:"result"`
}

// DecimalPair операнды деления в виде десятичных строк
type DecimalPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// DecimalResult частное в виде десятичной строки
type DecimalResult struct {
	Result string `json:"result"`
}

// SqrtRequest аргумент квадратного корня
type SqrtRequest struct {
	Value float64 `json:"value"`
}

// SqrtResult результат квадратного корня
type SqrtResult struct {
	Result float64 `json:"result"`
}
