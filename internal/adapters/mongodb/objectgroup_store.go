package mongodb

import (
	"context"

	"github.com/scidatahub/vault/internal/domain/objectgroup"

	"go.mongodb.org/mongo-driver/bson"
)

// ObjectGroupDescriptor describes the ObjectGroup collection.
var ObjectGroupDescriptor = EntityDescriptor{
	CollectionName: objectgroup.CollectionName,
	ParentField:    "dataset_id",
	HasParent:      true,
}

// IncrementRevisionCounter atomically increments an ObjectGroup's
// revision_counter and returns the updated document, so the assigned
// revision number is read back post-increment per spec.md §4.4.
func (s *Store[T]) IncrementRevisionCounter(ctx context.Context, groupID string) (T, error) {
	return s.FindAndUpdate(ctx,
		bson.M{"id": groupID},
		bson.M{"$inc": bson.M{"revision_counter": int64(1)}},
	)
}
