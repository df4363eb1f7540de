package grpcserver

import (
	"context"
	"errors"
	"net"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/GGmuzem/showcase-api/internal/logger"
	pb "github.com/GGmuzem/showcase-api/pkg/calculator"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// CalculatorServer gRPC-адаптер калькулятора
type CalculatorServer struct {
	pb.UnimplementedCalculatorServer

	calc calculator.Service
	log  *logger.Logger
}

var _ pb.CalculatorServer = (*CalculatorServer)(nil)

// NewCalculatorServer создает gRPC-сервер калькулятора
func NewCalculatorServer(calc calculator.Service, log *logger.Logger) *CalculatorServer {
	if log == nil {
		log = logger.NewNop()
	}
	return &CalculatorServer{calc: calc, log: log}
}

// NewServer создаёт grpc.Server с зарегистрированным сервисом и рефлексией
func NewServer(calc calculator.Service, log *logger.Logger) *grpc.Server {
	srv := grpc.NewServer()
	pb.RegisterCalculatorServer(srv, NewCalculatorServer(calc, log))
	reflection.Register(srv)
	return srv
}

// Serve обслуживает lis до отмены ctx, затем корректно останавливает сервер
func Serve(ctx context.Context, srv *grpc.Server, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		srv.GracefulStop()
		return nil
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

func (s *CalculatorServer) Add(ctx context.Context, in *pb.IntPair) (*pb.IntResult, error) {
	result, err := s.calc.Add(in.A, in.B)
	if err != nil {
		return nil, s.toStatus("Add", err)
	}
	return &pb.IntResult{Result: result}, nil
}

func (s *CalculatorServer) Subtract(ctx context.Context, in *pb.IntPair) (*pb.IntResult, error) {
	result, err := s.calc.Subtract(in.A, in.B)
	if err != nil {
		return nil, s.toStatus("Subtract", err)
	}
	return &pb.IntResult{Result: result}, nil
}

// Divide принимает и возвращает десятичные строки
func (s *CalculatorServer) Divide(ctx context.Context, in *pb.DecimalPair) (*pb.DecimalResult, error) {
	a, err := decimal.NewFromString(in.A)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "a is not a decimal: %q", in.A)
	}
	b, err := decimal.NewFromString(in.B)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "b is not a decimal: %q", in.B)
	}

	result, err := s.calc.Divide(a, b)
	if err != nil {
		return nil, s.toStatus("Divide", err)
	}
	return &pb.DecimalResult{Result: result.String()}, nil
}

func (s *CalculatorServer) Sqrt(ctx context.Context, in *pb.SqrtRequest) (*pb.SqrtResult, error) {
	result, err := s.calc.CalculateAsync(ctx, in.Value)
	if err != nil {
		return nil, s.toStatus("Sqrt", err)
	}
	return &pb.SqrtResult{Result: result}, nil
}

func (s *CalculatorServer) toStatus(method string, err error) error {
	var overflowErr *calculator.OverflowError
	var argErr *calculator.InvalidArgumentError

	switch {
	case errors.As(err, &argErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &overflowErr):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		s.log.Error("grpc call failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
