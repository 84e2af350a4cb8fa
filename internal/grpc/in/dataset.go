package in

import (
	"context"

	"github.com/scidatahub/vault/internal/domain/dataset"
	"github.com/scidatahub/vault/internal/domain/shared"
	"github.com/scidatahub/vault/internal/rpc/wire"
	"github.com/scidatahub/vault/internal/services"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DatasetServer is the facade for the Dataset RPC group of spec.md §6.
type DatasetServer struct {
	Handlers *services.Handlers
}

func toDatasetMessage(d *dataset.Dataset) wire.DatasetMessage {
	return wire.DatasetMessage{
		ID:        d.ID,
		Name:      d.Name,
		Status:    string(d.Status),
		ProjectID: d.ProjectID,
		IsPublic:  d.IsPublic,
		CreatedAt: d.CreatedAt.Format(timeFormat),
		UpdatedAt: d.UpdatedAt.Format(timeFormat),
	}
}

func toDatasetVersionMessage(v *dataset.Version) wire.DatasetVersionMessage {
	return wire.DatasetVersionMessage{
		ID:             v.ID,
		Name:           v.Name,
		Status:         string(v.Status),
		DatasetID:      v.DatasetID,
		ObjectGroupIDs: v.ObjectGroupIDs,
		ObjectCount:    v.ObjectCount,
		CreatedAt:      v.CreatedAt.Format(timeFormat),
		UpdatedAt:      v.UpdatedAt.Format(timeFormat),
	}
}

func (s *DatasetServer) CreateDataset(ctx context.Context, req *wire.CreateDatasetRequest) (*wire.CreateDatasetResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceProject, req.ProjectID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	d, err := s.Handlers.CreateDataset(ctx, req.ProjectID, req.Name, req.IsPublic)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.CreateDatasetResponse{Dataset: toDatasetMessage(d)}, nil
}

func (s *DatasetServer) GetDataset(ctx context.Context, req *wire.GetDatasetRequest) (*wire.GetDatasetResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDataset, req.ID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	d, err := s.Handlers.GetDataset(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetDatasetResponse{Dataset: toDatasetMessage(d)}, nil
}

func (s *DatasetServer) GetDatasetVersions(ctx context.Context, req *wire.GetDatasetVersionsRequest) (*wire.GetDatasetVersionsResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDataset, req.DatasetID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	versions, err := s.Handlers.GetDatasetVersions(ctx, req.DatasetID)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]wire.DatasetVersionMessage, 0, len(versions))
	for _, v := range versions {
		out = append(out, toDatasetVersionMessage(v))
	}

	return &wire.GetDatasetVersionsResponse{Versions: out}, nil
}

func (s *DatasetServer) GetDatasetObjectGroups(ctx context.Context, req *wire.GetDatasetObjectGroupsRequest) (*wire.GetDatasetObjectGroupsResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDataset, req.DatasetID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	groups, err := s.Handlers.GetDatasetObjectGroups(ctx, req.DatasetID)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]wire.ObjectGroupMessage, 0, len(groups))
	for _, g := range groups {
		out = append(out, toObjectGroupMessage(g))
	}

	return &wire.GetDatasetObjectGroupsResponse{ObjectGroups: out}, nil
}

func (s *DatasetServer) GetCurrentObjectGroupRevisions(ctx context.Context, req *wire.GetCurrentObjectGroupRevisionsRequest) (*wire.GetCurrentObjectGroupRevisionsResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDataset, req.DatasetID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	revisions, err := s.Handlers.GetCurrentObjectGroupRevisions(ctx, req.DatasetID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetCurrentObjectGroupRevisionsResponse{Revisions: toRevisionMessages(revisions)}, nil
}

func (s *DatasetServer) ReleaseDatasetVersion(ctx context.Context, req *wire.ReleaseDatasetVersionRequest) (*wire.ReleaseDatasetVersionResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDataset, req.DatasetID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	v, err := s.Handlers.ReleaseDatasetVersion(ctx, caller, req.DatasetID, req.Name, req.RevisionIDs)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.ReleaseDatasetVersionResponse{Version: toDatasetVersionMessage(v)}, nil
}

func (s *DatasetServer) GetDatasetVersion(ctx context.Context, req *wire.GetDatasetVersionRequest) (*wire.GetDatasetVersionResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDatasetVersion, req.ID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	v, err := s.Handlers.GetDatasetVersion(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetDatasetVersionResponse{Version: toDatasetVersionMessage(v)}, nil
}

func (s *DatasetServer) GetDatasetVersionRevisions(ctx context.Context, req *wire.GetDatasetVersionRevisionsRequest) (*wire.GetDatasetVersionRevisionsResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDatasetVersion, req.VersionID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	revisions, err := s.Handlers.GetDatasetVersionRevisions(ctx, req.VersionID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetDatasetVersionRevisionsResponse{Revisions: toRevisionMessages(revisions)}, nil
}

func (s *DatasetServer) DeleteDataset(ctx context.Context, req *wire.DeleteDatasetRequest) (*wire.DeleteDatasetResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDataset, req.ID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.DeleteDataset(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	return &wire.DeleteDatasetResponse{}, nil
}

func (s *DatasetServer) DeleteDatasetVersion(ctx context.Context, req *wire.DeleteDatasetVersionRequest) (*wire.DeleteDatasetVersionResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDatasetVersion, req.ID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.DeleteDatasetVersion(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	return &wire.DeleteDatasetVersionResponse{}, nil
}

// UpdateDatasetField is reserved per spec.md §6 and always returns unimplemented.
func (s *DatasetServer) UpdateDatasetField(_ context.Context, _ *wire.UpdateDatasetFieldRequest) (*wire.UpdateDatasetFieldResponse, error) {
	return nil, status.Error(codes.Unimplemented, "UpdateDatasetField is reserved")
}

// DatasetServiceDesc hand-builds the grpc.ServiceDesc for DatasetServer.
var DatasetServiceDesc = grpc.ServiceDesc{
	ServiceName: "vault.Dataset",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("CreateDataset", func(s *DatasetServer, ctx context.Context, req *wire.CreateDatasetRequest) (any, error) {
			return s.CreateDataset(ctx, req)
		}),
		unaryMethod("GetDataset", func(s *DatasetServer, ctx context.Context, req *wire.GetDatasetRequest) (any, error) {
			return s.GetDataset(ctx, req)
		}),
		unaryMethod("GetDatasetVersions", func(s *DatasetServer, ctx context.Context, req *wire.GetDatasetVersionsRequest) (any, error) {
			return s.GetDatasetVersions(ctx, req)
		}),
		unaryMethod("GetDatasetObjectGroups", func(s *DatasetServer, ctx context.Context, req *wire.GetDatasetObjectGroupsRequest) (any, error) {
			return s.GetDatasetObjectGroups(ctx, req)
		}),
		unaryMethod("GetCurrentObjectGroupRevisions", func(s *DatasetServer, ctx context.Context, req *wire.GetCurrentObjectGroupRevisionsRequest) (any, error) {
			return s.GetCurrentObjectGroupRevisions(ctx, req)
		}),
		unaryMethod("ReleaseDatasetVersion", func(s *DatasetServer, ctx context.Context, req *wire.ReleaseDatasetVersionRequest) (any, error) {
			return s.ReleaseDatasetVersion(ctx, req)
		}),
		unaryMethod("GetDatasetVersion", func(s *DatasetServer, ctx context.Context, req *wire.GetDatasetVersionRequest) (any, error) {
			return s.GetDatasetVersion(ctx, req)
		}),
		unaryMethod("GetDatasetVersionRevisions", func(s *DatasetServer, ctx context.Context, req *wire.GetDatasetVersionRevisionsRequest) (any, error) {
			return s.GetDatasetVersionRevisions(ctx, req)
		}),
		unaryMethod("DeleteDataset", func(s *DatasetServer, ctx context.Context, req *wire.DeleteDatasetRequest) (any, error) {
			return s.DeleteDataset(ctx, req)
		}),
		unaryMethod("DeleteDatasetVersion", func(s *DatasetServer, ctx context.Context, req *wire.DeleteDatasetVersionRequest) (any, error) {
			return s.DeleteDatasetVersion(ctx, req)
		}),
		unaryMethod("UpdateDatasetField", func(s *DatasetServer, ctx context.Context, req *wire.UpdateDatasetFieldRequest) (any, error) {
			return s.UpdateDatasetField(ctx, req)
		}),
	},
}
