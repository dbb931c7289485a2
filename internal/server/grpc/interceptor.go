package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
	"github.com/dmitrijs2005/arabica/internal/server/gate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods need a bearer token that the gate accepts.
var protectedMethods = map[string]bool{
	authrpc.MethodCheck:    true,
	authrpc.MethodLogout:   true,
	authrpc.MethodSessions: true,
}

func (s *GRPCServer) identityInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	id, err := s.gate.Authenticate(ctx, authorization(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(gate.WithIdentity(ctx, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "gRPC request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start).String(),
	)
	return resp, err
}

func authorization(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(authrpc.MetadataAuthorization)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
