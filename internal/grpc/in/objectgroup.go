package in

import (
	"context"

	"github.com/scidatahub/vault/internal/domain/objectgroup"
	"github.com/scidatahub/vault/internal/domain/shared"
	"github.com/scidatahub/vault/internal/rpc/wire"
	"github.com/scidatahub/vault/internal/services"

	"google.golang.org/grpc"
)

// ObjectGroupServer is the facade for the ObjectGroup RPC group of spec.md §6.
type ObjectGroupServer struct {
	Handlers *services.Handlers
}

func toObjectGroupMessage(g *objectgroup.ObjectGroup) wire.ObjectGroupMessage {
	return wire.ObjectGroupMessage{
		ID:              g.ID,
		Name:            g.Name,
		Status:          string(g.Status),
		DatasetID:       g.DatasetID,
		RevisionCounter: g.RevisionCounter,
		HeadID:          g.HeadID,
		CreatedAt:       g.CreatedAt.Format(timeFormat),
		UpdatedAt:       g.UpdatedAt.Format(timeFormat),
	}
}

func toObjectMessage(o objectgroup.Object) wire.ObjectMessage {
	return wire.ObjectMessage{
		ID:         o.ID,
		Filename:   o.Filename,
		Filetype:   o.Filetype,
		ContentLen: o.ContentLen,
		Location: wire.LocationMessage{
			Bucket: o.Location.Bucket,
			Key:    o.Location.Key,
			URL:    o.Location.URL,
			Type:   o.Location.Type,
		},
		UploadID: o.UploadID,
		Created:  o.Created.Format(timeFormat),
	}
}

func toRevisionMessage(r *objectgroup.Revision) wire.RevisionMessage {
	objects := make([]wire.ObjectMessage, 0, len(r.Objects))
	for _, o := range r.Objects {
		objects = append(objects, toObjectMessage(o))
	}

	return wire.RevisionMessage{
		ID:              r.ID,
		Name:            r.Name,
		Status:          string(r.Status),
		ObjectGroupID:   r.ObjectGroupID,
		DatasetID:       r.DatasetID,
		Revision:        r.Revision,
		Objects:         objects,
		DatasetVersions: r.DatasetVersions,
		CreatedAt:       r.CreatedAt.Format(timeFormat),
		UpdatedAt:       r.UpdatedAt.Format(timeFormat),
	}
}

func toRevisionMessages(revisions []*objectgroup.Revision) []wire.RevisionMessage {
	out := make([]wire.RevisionMessage, 0, len(revisions))
	for _, r := range revisions {
		out = append(out, toRevisionMessage(r))
	}

	return out
}

func fromObjectSpecs(specs []wire.ObjectSpecMessage) []services.ObjectSpec {
	out := make([]services.ObjectSpec, 0, len(specs))
	for _, s := range specs {
		out = append(out, services.ObjectSpec{Filename: s.Filename, Filetype: s.Filetype, ContentLen: s.ContentLen})
	}

	return out
}

func (s *ObjectGroupServer) CreateObjectGroup(ctx context.Context, req *wire.CreateObjectGroupRequest) (*wire.CreateObjectGroupResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceDataset, req.DatasetID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	g, r, err := s.Handlers.CreateObjectGroup(ctx, req.DatasetID, req.ProjectID, req.Name, fromObjectSpecs(req.Objects))
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.CreateObjectGroupResponse{ObjectGroup: toObjectGroupMessage(g), Revision: toRevisionMessage(r)}, nil
}

func (s *ObjectGroupServer) AddRevisionToObjectGroup(ctx context.Context, req *wire.AddRevisionToObjectGroupRequest) (*wire.AddRevisionToObjectGroupResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroup, req.ObjectGroupID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	r, err := s.Handlers.AddRevisionToObjectGroup(ctx, req.ObjectGroupID, req.ProjectID, fromObjectSpecs(req.Objects))
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.AddRevisionToObjectGroupResponse{Revision: toRevisionMessage(r)}, nil
}

func (s *ObjectGroupServer) GetObjectGroup(ctx context.Context, req *wire.GetObjectGroupRequest) (*wire.GetObjectGroupResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroup, req.ID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	g, err := s.Handlers.GetObjectGroup(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetObjectGroupResponse{ObjectGroup: toObjectGroupMessage(g)}, nil
}

func (s *ObjectGroupServer) GetObjectGroupRevision(ctx context.Context, req *wire.GetObjectGroupRevisionRequest) (*wire.GetObjectGroupRevisionResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroup, req.ObjectGroupID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	ref := services.RevisionRef{
		RevisionID:     req.RevisionID,
		RevisionNumber: req.RevisionNumber,
		VersionTag:     req.VersionTag,
	}

	r, err := s.Handlers.GetObjectGroupRevision(ctx, req.ObjectGroupID, ref)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetObjectGroupRevisionResponse{Revision: toRevisionMessage(r)}, nil
}

func (s *ObjectGroupServer) GetObjectGroupRevisions(ctx context.Context, req *wire.GetObjectGroupRevisionsRequest) (*wire.GetObjectGroupRevisionsResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroup, req.ObjectGroupID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	revisions, err := s.Handlers.GetObjectGroupRevisions(ctx, req.ObjectGroupID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetObjectGroupRevisionsResponse{Revisions: toRevisionMessages(revisions)}, nil
}

func (s *ObjectGroupServer) GetCurrentObjectGroupRevision(ctx context.Context, req *wire.GetCurrentObjectGroupRevisionRequest) (*wire.GetCurrentObjectGroupRevisionResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroup, req.ObjectGroupID, shared.RightRead); err != nil {
		return nil, toStatus(err)
	}

	r, err := s.Handlers.GetCurrentObjectGroupRevision(ctx, req.ObjectGroupID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &wire.GetCurrentObjectGroupRevisionResponse{Revision: toRevisionMessage(r)}, nil
}

func (s *ObjectGroupServer) FinishObjectUpload(ctx context.Context, req *wire.FinishObjectUploadRequest) (*wire.FinishObjectUploadResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroup, req.ObjectGroupID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.FinishObjectUpload(ctx, req.ObjectGroupID); err != nil {
		return nil, toStatus(err)
	}

	return &wire.FinishObjectUploadResponse{}, nil
}

func (s *ObjectGroupServer) DeleteObjectGroup(ctx context.Context, req *wire.DeleteObjectGroupRequest) (*wire.DeleteObjectGroupResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroup, req.ID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.DeleteObjectGroup(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	return &wire.DeleteObjectGroupResponse{}, nil
}

func (s *ObjectGroupServer) DeleteObjectGroupRevision(ctx context.Context, req *wire.DeleteObjectGroupRevisionRequest) (*wire.DeleteObjectGroupRevisionResponse, error) {
	caller, err := identityFromContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.Auth.Authorize(ctx, caller, shared.ResourceObjectGroupRevision, req.ID, shared.RightWrite); err != nil {
		return nil, toStatus(err)
	}

	if err := s.Handlers.DeleteObjectGroupRevision(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	return &wire.DeleteObjectGroupRevisionResponse{}, nil
}

// ObjectGroupServiceDesc hand-builds the grpc.ServiceDesc for ObjectGroupServer.
var ObjectGroupServiceDesc = grpc.ServiceDesc{
	ServiceName: "vault.ObjectGroup",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("CreateObjectGroup", func(s *ObjectGroupServer, ctx context.Context, req *wire.CreateObjectGroupRequest) (any, error) {
			return s.CreateObjectGroup(ctx, req)
		}),
		unaryMethod("AddRevisionToObjectGroup", func(s *ObjectGroupServer, ctx context.Context, req *wire.AddRevisionToObjectGroupRequest) (any, error) {
			return s.AddRevisionToObjectGroup(ctx, req)
		}),
		unaryMethod("GetObjectGroup", func(s *ObjectGroupServer, ctx context.Context, req *wire.GetObjectGroupRequest) (any, error) {
			return s.GetObjectGroup(ctx, req)
		}),
		unaryMethod("GetObjectGroupRevision", func(s *ObjectGroupServer, ctx context.Context, req *wire.GetObjectGroupRevisionRequest) (any, error) {
			return s.GetObjectGroupRevision(ctx, req)
		}),
		unaryMethod("GetObjectGroupRevisions", func(s *ObjectGroupServer, ctx context.Context, req *wire.GetObjectGroupRevisionsRequest) (any, error) {
			return s.GetObjectGroupRevisions(ctx, req)
		}),
		unaryMethod("GetCurrentObjectGroupRevision", func(s *ObjectGroupServer, ctx context.Context, req *wire.GetCurrentObjectGroupRevisionRequest) (any, error) {
			return s.GetCurrentObjectGroupRevision(ctx, req)
		}),
		unaryMethod("FinishObjectUpload", func(s *ObjectGroupServer, ctx context.Context, req *wire.FinishObjectUploadRequest) (any, error) {
			return s.FinishObjectUpload(ctx, req)
		}),
		unaryMethod("DeleteObjectGroup", func(s *ObjectGroupServer, ctx context.Context, req *wire.DeleteObjectGroupRequest) (any, error) {
			return s.DeleteObjectGroup(ctx, req)
		}),
		unaryMethod("DeleteObjectGroupRevision", func(s *ObjectGroupServer, ctx context.Context, req *wire.DeleteObjectGroupRevisionRequest) (any, error) {
			return s.DeleteObjectGroupRevision(ctx, req)
		}),
	},
}
