package services

import (
	"context"

	"github.com/scidatahub/vault/internal/adapters/objectstore"
	"github.com/scidatahub/vault/internal/domain/objectgroup"
	"github.com/scidatahub/vault/internal/domain/shared"

	"go.mongodb.org/mongo-driver/bson"
)

// objectGroupStore is the subset of mongodb.Store[*objectgroup.ObjectGroup]'s
// method set the ObjectGroup/Dataset handlers call, narrowed to an interface
// so a hand-written fake can stand in for *mongodb.Store in tests without a
// live Mongo deployment.
type objectGroupStore interface {
	Insert(ctx context.Context, id string, value *objectgroup.ObjectGroup) (*objectgroup.ObjectGroup, error)
	FindOne(ctx context.Context, query bson.M) (*objectgroup.ObjectGroup, error)
	FindByParent(ctx context.Context, parentID string) ([]*objectgroup.ObjectGroup, error)
	IncrementRevisionCounter(ctx context.Context, groupID string) (*objectgroup.ObjectGroup, error)
	UpdateOne(ctx context.Context, query, update bson.M) (int64, error)
	SetStatus(ctx context.Context, id string, status shared.Status) error
	Delete(ctx context.Context, query bson.M) error
}

// revisionStore is the subset of mongodb.Store[*objectgroup.Revision]'s
// method set the ObjectGroup/Dataset/Load handlers call.
type revisionStore interface {
	Insert(ctx context.Context, id string, value *objectgroup.Revision) (*objectgroup.Revision, error)
	FindOne(ctx context.Context, query bson.M) (*objectgroup.Revision, error)
	FindMany(ctx context.Context, query bson.M) ([]*objectgroup.Revision, error)
	FindManySorted(ctx context.Context, query bson.M, sortKey string, ascending bool) ([]*objectgroup.Revision, error)
	SetStatus(ctx context.Context, id string, status shared.Status) error
	Delete(ctx context.Context, query bson.M) error
	FindObject(ctx context.Context, objectID string) (*objectgroup.Revision, *objectgroup.Object, error)
	UpdateObject(ctx context.Context, obj objectgroup.Object) error
	LinkDatasetVersion(ctx context.Context, revisionIDs []string, versionID string) (int64, error)
	UnlinkDatasetVersion(ctx context.Context, datasetID, versionID string) (int64, error)
}

// objectStore is the subset of objectstore.Adapter's method set the
// ObjectGroup/Load handlers call.
type objectStore interface {
	MakeLocation(projectID, datasetID, objectID, filename string) objectgroup.Location
	PresignGet(ctx context.Context, loc objectgroup.Location) (string, error)
	PresignPut(ctx context.Context, loc objectgroup.Location) (string, error)
	MultipartInit(ctx context.Context, loc objectgroup.Location) (string, error)
	MultipartPresignPart(ctx context.Context, loc objectgroup.Location, uploadID string, partNo int32) (string, error)
	MultipartComplete(ctx context.Context, loc objectgroup.Location, uploadID string, parts []objectstore.UploadPart) error
	Delete(ctx context.Context, loc objectgroup.Location) error
}
