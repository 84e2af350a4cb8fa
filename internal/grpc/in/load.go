package in

import (
	"context"

	"github.com/scidatahub/vault/internal/adapters/objectstore"
	"github.com/scidatahub/vault/internal/domain/shared"
	"github.com/scidatahub/vault/internal/rpc/wire"
	"github.com/scidatahub/vault/internal/services"

	"google.golang.org/grpc"
)

// LoadServer is the facade for the payload upload/download RPC group of
// spec.md §6.
type LoadServer struct {
	Handlers *services.Handlers
}

func fromCompletedParts(parts []wire.CompletedPartMessage) []objectstore.UploadPart {
	out := make([]objectstore.UploadPart, 0, len(parts))
	for _, p := range parts {
		out = append(out, objectstore.UploadPart{ETag: p.ETag, PartNo: p.PartNo})
	}

	return out
}

func (s *LoadServer) CreateDownloadLink(ctx context.Context, req *wire.CreateDownloadLinkRequest) (*wire.CreateDownloadLinkResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObject, req.ObjectID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	url, err := s.Handlers.CreateDownloadLink(ctx, req.ObjectID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.CreateDownloadLinkResponse{URL: url}, nil
}

func (s *LoadServer) CreateUploadLink(ctx context.Context, req *wire.CreateUploadLinkRequest) (*wire.CreateUploadLinkResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObject, req.ObjectID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	url, err := s.Handlers.CreateUploadLink(ctx, req.ObjectID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.CreateUploadLinkResponse{URL: url}, nil
}

func (s *LoadServer) StartMultipartUpload(ctx context.Context, req *wire.StartMultipartUploadRequest) (*wire.StartMultipartUploadResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObject, req.ObjectID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	uploadID, err := s.Handlers.StartMultipartUpload(ctx, req.ObjectID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.StartMultipartUploadResponse{UploadID: uploadID}, nil
}

func (s *LoadServer) GetMultipartUploadLink(ctx context.Context, req *wire.GetMultipartUploadLinkRequest) (*wire.GetMultipartUploadLinkResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObject, req.ObjectID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	url, err := s.Handlers.GetMultipartUploadLink(ctx, req.ObjectID, req.PartNo)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetMultipartUploadLinkResponse{URL: url}, nil
}

func (s *LoadServer) CompleteMultipartUpload(ctx context.Context, req *wire.CompleteMultipartUploadRequest) (*wire.CompleteMultipartUploadResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObject, req.ObjectID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.CompleteMultipartUpload(ctx, req.ObjectID, fromCompletedParts(req.Parts)); err != nil {
		return nil, toStatus(err)
	}

	return &wire.CompleteMultipartUploadResponse{}, nil
}

// LoadServiceDesc hand-builds the grpc.ServiceDesc for LoadServer.
var LoadServiceDesc = grpc.ServiceDesc{
	ServiceName: "vault.Load",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("CreateDownloadLink", func(s *LoadServer, ctx context.Context, req *wire.CreateDownloadLinkRequest) (any, error) {
			return s.CreateDownloadLink(ctx, req)
		}),
		unaryMethod("CreateUploadLink", func(s *LoadServer, ctx context.Context, req *wire.CreateUploadLinkRequest) (any, error) {
			return s.CreateUploadLink(ctx, req)
		}),
		unaryMethod("StartMultipartUpload", func(s *LoadServer, ctx context.Context, req *wire.StartMultipartUploadRequest) (any, error) {
			return s.StartMultipartUpload(ctx, req)
		}),
		unaryMethod("GetMultipartUploadLink", func(s *LoadServer, ctx context.Context, req *wire.GetMultipartUploadLinkRequest) (any, error) {
			return s.GetMultipartUploadLink(ctx, req)
		}),
		unaryMethod("CompleteMultipartUpload", func(s *LoadServer, ctx context.Context, req *wire.CompleteMultipartUploadRequest) (any, error) {
			return s.CompleteMultipartUpload(ctx, req)
		}),
	},
}
