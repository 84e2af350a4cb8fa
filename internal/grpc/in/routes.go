package in

import (
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/scidatahub/vault/common/mlog"
	"github.com/scidatahub/vault/internal/adapters/identity"
	"github.com/scidatahub/vault/internal/services"

	_ "github.com/scidatahub/vault/internal/rpc/codec"
)

// NewRouterGRPC registers every RPC group's ServiceDesc against a fresh
// grpc.Server, generalizing the teacher's NewRouterGRPC from a single
// protoc-generated service to the hand-built ServiceDescs of servicedesc.go.
func NewRouterGRPC(logger mlog.Logger, tracer trace.Tracer, auth *identity.Authenticator, handlers *services.Handlers) *grpc.Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			withTracing(tracer),
			withLogging(logger),
			withAuthentication(auth),
		),
	)

	reflection.Register(server)

	server.RegisterService(&ProjectServiceDesc, &ProjectServer{Handlers: handlers})
	server.RegisterService(&DatasetServiceDesc, &DatasetServer{Handlers: handlers})
	server.RegisterService(&ObjectGroupServiceDesc, &ObjectGroupServer{Handlers: handlers})
	server.RegisterService(&LoadServiceDesc, &LoadServer{Handlers: handlers})

	return server
}
