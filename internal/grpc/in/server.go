package in

import (
	"net"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/common/mlog"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

// ServerGRPC wraps a *grpc.Server as a common.App, generalizing the
// teacher's ServerGRPC (components/ledger/internal/service/servergRPC.go)
// from a protoc-generated single service to the hand-built ServiceDescs
// NewRouterGRPC registers.
type ServerGRPC struct {
	listener     net.Listener
	server       *grpc.Server
	protoAddress string
	mlog.Logger
}

// NewServerGRPC binds a listener at address and wraps server for use with a common.Launcher.
func NewServerGRPC(address string, server *grpc.Server, logger mlog.Logger) (*ServerGRPC, error) {
	listener, err := net.Listen("tcp4", address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bind grpc listener")
	}

	return &ServerGRPC{
		listener:     listener,
		server:       server,
		protoAddress: address,
		Logger:       logger,
	}, nil
}

// ProtoAddress returns the address the server is bound to.
func (s *ServerGRPC) ProtoAddress() string {
	return s.protoAddress
}

// Run serves gRPC until the listener closes, satisfying common.App.
func (s *ServerGRPC) Run(_ *common.Launcher) error {
	s.Logger.Infof("grpc server listening on %s", s.protoAddress)

	if err := s.server.Serve(s.listener); err != nil {
		return errors.Wrap(err, "failed to run the grpc server")
	}

	return nil
}
