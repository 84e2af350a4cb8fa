package mongodb

import (
	"context"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/domain/objectgroup"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RevisionDescriptor describes the ObjectGroupRevision collection.
var RevisionDescriptor = EntityDescriptor{
	CollectionName: objectgroup.RevisionCollectionName,
	ParentField:    "dataset_id",
	HasParent:      true,
}

// FindObject locates the single embedded Object whose id matches objectID,
// using the positional "objects.$" projection so only the matched array
// element is returned — the corrected behavior from spec.md §9's Open
// Questions, not the "objects.id":1-then-objects[0] variant that silently
// returns the wrong object when a revision holds more than one.
func (s *Store[T]) FindObject(ctx context.Context, objectID string) (*objectgroup.Revision, *objectgroup.Object, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, nil, err
	}

	filter := bson.M{"objects.id": objectID}
	projection := bson.M{"objects.$": 1, "id": 1, "object_group_id": 1, "dataset_id": 1, "revision": 1, "status": 1, "dataset_versions": 1}

	opts := options.FindOne().SetProjection(projection)

	var revision objectgroup.Revision
	if err := coll.FindOne(ctx, filter, opts).Decode(&revision); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, common.WrapEntityNotFoundError("Object", err)
		}

		return nil, nil, common.ValidateInternalError(err, "Object")
	}

	if len(revision.Objects) != 1 {
		return nil, nil, common.ValidateInternalError(errors.New("find_object projection returned an unexpected element count"), "Object")
	}

	obj := revision.Objects[0]

	return &revision, &obj, nil
}

// UpdateObject replaces the embedded Object matching objects.id == obj.ID
// using the positional $ update operator.
func (s *Store[T]) UpdateObject(ctx context.Context, obj objectgroup.Object) error {
	_, err := s.UpdateOne(ctx,
		bson.M{"objects.id": obj.ID},
		bson.M{"$set": bson.M{"objects.$": obj}},
	)

	return err
}

// LinkDatasetVersion adds versionID to the dataset_versions reverse index
// of every revision in revisionIDs, via $addToSet so the operation is
// idempotent under retry.
func (s *Store[T]) LinkDatasetVersion(ctx context.Context, revisionIDs []string, versionID string) (int64, error) {
	return s.UpdateMany(ctx,
		bson.M{"id": bson.M{"$in": revisionIDs}},
		bson.M{"$addToSet": bson.M{"dataset_versions": versionID}},
	)
}

// UnlinkDatasetVersion removes versionID from the dataset_versions reverse
// index of every revision belonging to datasetID, via $pull so the
// operation is idempotent under retry.
func (s *Store[T]) UnlinkDatasetVersion(ctx context.Context, datasetID, versionID string) (int64, error) {
	return s.UpdateMany(ctx,
		bson.M{"dataset_id": datasetID},
		bson.M{"$pull": bson.M{"dataset_versions": versionID}},
	)
}
