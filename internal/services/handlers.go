// Package services implements the resource handlers: CRUD semantics and
// cascading lifecycle management for Project, Dataset, ObjectGroup,
// ObjectGroupRevision, DatasetVersion, and APIToken, per spec.md §4.4.
package services

import (
	"context"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/common/mlog"
	"github.com/scidatahub/vault/common/mmongo"
	"github.com/scidatahub/vault/internal/adapters/identity"
	"github.com/scidatahub/vault/internal/adapters/mongodb"
	"github.com/scidatahub/vault/internal/adapters/objectstore"
	"github.com/scidatahub/vault/internal/domain/dataset"
	"github.com/scidatahub/vault/internal/domain/objectgroup"
	"github.com/scidatahub/vault/internal/domain/project"
	"github.com/scidatahub/vault/internal/domain/shared"

	"go.mongodb.org/mongo-driver/bson"
)

// Handlers holds the adapter handles every resource handler composes
// against. It carries no other process-wide mutable state, per spec.md
// §9's "no global mutable handler state" design note.
type Handlers struct {
	Projects  *mongodb.Store[*project.Project]
	Datasets  *mongodb.Store[*dataset.Dataset]
	Versions  *mongodb.Store[*dataset.Version]
	Groups    objectGroupStore
	Revisions revisionStore
	APITokens *mongodb.Store[*project.APIToken]

	Objects objectStore
	Auth    *identity.Authorizer

	Logger mlog.Logger
}

// NewHandlers wires every Mongo-backed store to conn and builds the
// Authorizer's resolution callbacks against those same stores.
func NewHandlers(conn *mmongo.MongoConnection, objects *objectstore.Adapter, logger mlog.Logger) *Handlers {
	h := &Handlers{
		Projects:  mongodb.NewStore[*project.Project](conn, mongodb.ProjectDescriptor, logger),
		Datasets:  mongodb.NewStore[*dataset.Dataset](conn, mongodb.EntityDescriptor{CollectionName: dataset.CollectionName, ParentField: "project_id", HasParent: true}, logger),
		Versions:  mongodb.NewStore[*dataset.Version](conn, mongodb.EntityDescriptor{CollectionName: dataset.VersionCollectionName, ParentField: "dataset_id", HasParent: true}, logger),
		Groups:    mongodb.NewStore[*objectgroup.ObjectGroup](conn, mongodb.ObjectGroupDescriptor, logger),
		Revisions: mongodb.NewStore[*objectgroup.Revision](conn, mongodb.RevisionDescriptor, logger),
		APITokens: mongodb.NewStore[*project.APIToken](conn, mongodb.EntityDescriptor{CollectionName: project.APITokenCollectionName, ParentField: "project_id", HasParent: true}, logger),
		Objects:   objects,
		Logger:    logger,
	}

	h.Auth = identity.NewAuthorizer(h.lookupProject, h.lookupDataset, h.lookupDatasetID, h.lookupRevisionByObject)

	return h
}

func (h *Handlers) lookupProject(ctx context.Context, id string) (*project.Project, error) {
	return h.Projects.FindOne(ctx, bson.M{"id": id})
}

func (h *Handlers) lookupDataset(ctx context.Context, id string) (*dataset.Dataset, error) {
	return h.Datasets.FindOne(ctx, bson.M{"id": id})
}

func (h *Handlers) lookupDatasetID(ctx context.Context, resource shared.Resource, id string) (string, error) {
	switch resource {
	case shared.ResourceDatasetVersion:
		v, err := h.Versions.FindOne(ctx, bson.M{"id": id})
		if err != nil {
			return "", err
		}

		return v.DatasetID, nil

	case shared.ResourceObjectGroup:
		g, err := h.Groups.FindOne(ctx, bson.M{"id": id})
		if err != nil {
			return "", err
		}

		return g.DatasetID, nil

	case shared.ResourceObjectGroupRevision:
		r, err := h.Revisions.FindOne(ctx, bson.M{"id": id})
		if err != nil {
			return "", err
		}

		return r.DatasetID, nil

	default:
		return "", common.ValidateInternalError(nil, string(resource))
	}
}

func (h *Handlers) lookupRevisionByObject(ctx context.Context, objectID string) (string, error) {
	revision, _, err := h.Revisions.FindObject(ctx, objectID)
	if err != nil {
		return "", err
	}

	return revision.DatasetID, nil
}
