package computation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/XJIeI5/evaluation/internal/calculation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server evaluates postfix expressions for the storage service. At most
// parallel calculations run at once, the rest wait for a free slot.
type Server struct {
	addr   string
	slots  chan struct{}
	Logger *slog.Logger
}

func GetServer(host string, port, parallel int) *Server {
	if parallel < 1 {
		parallel = 1
	}
	var addr string
	if strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		addr = fmt.Sprintf(":%d", port)
	} else {
		host = strings.TrimPrefix(strings.TrimPrefix(host, "http://"), "https://")
		addr = fmt.Sprintf("%s:%d", host, port)
	}
	return &Server{
		addr:   addr,
		slots:  make(chan struct{}, parallel),
		Logger: slog.Default(),
	}
}

func (s *Server) Addr() string { return s.addr }

func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*wrapperspb.DoubleValue, error) {
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, status.FromContextError(ctx.Err()).Err()
	}
	defer func() { <-s.slots }()

	postfix, strict := evaluateArgs(req)
	c := calculation.Calculator{Strict: strict, Logger: s.Logger}
	res, err := c.Calculate(postfix)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return wrapperspb.Double(res), nil
}

func (s *Server) FreeProcess(context.Context, *emptypb.Empty) (*wrapperspb.Int32Value, error) {
	return wrapperspb.Int32(int32(cap(s.slots) - len(s.slots))), nil
}

// LoggingInterceptor logs every unary call with its status code and duration.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
