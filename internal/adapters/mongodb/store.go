// Package mongodb is the generic document-store adapter. A single
// Store[T] is parametrized over an EntityDescriptor[T] instead of
// duplicating a repository struct per entity type, per spec.md §9's
// adapter-genericity guidance.
package mongodb

import (
	"context"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/common/mlog"
	"github.com/scidatahub/vault/common/mmongo"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EntityDescriptor binds a Go type to its Mongo collection and,
// optionally, the field name used to look it up by parent.
type EntityDescriptor struct {
	CollectionName string
	ParentField    string
	HasParent      bool
}

// Store is a type-parametric document store. T is always a pointer to an
// entity struct (e.g. *project.Project), matching the teacher's
// ToEntity/FromEntity-paired model idiom generalized across every entity
// type instead of copy-pasted per repository.
type Store[T any] struct {
	conn *mmongo.MongoConnection
	desc EntityDescriptor
	logger mlog.Logger
}

// NewStore constructs a Store bound to desc, using conn for its connection pool.
func NewStore[T any](conn *mmongo.MongoConnection, desc EntityDescriptor, logger mlog.Logger) *Store[T] {
	return &Store[T]{conn: conn, desc: desc, logger: logger}
}

func (s *Store[T]) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.conn.GetDB(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get mongo connection")
	}

	return db.Database(s.conn.Database).Collection(s.desc.CollectionName), nil
}

// FindMany returns every document matching query, in the store's natural
// (insertion) order.
func (s *Store[T]) FindMany(ctx context.Context, query bson.M) ([]T, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, query)
	if err != nil {
		return nil, common.ValidateInternalError(err, s.desc.CollectionName)
	}
	defer cur.Close(ctx)

	var results []T
	if err := cur.All(ctx, &results); err != nil {
		return nil, common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return results, nil
}

// FindManySorted returns every document matching query, ordered by sortKey.
func (s *Store[T]) FindManySorted(ctx context.Context, query bson.M, sortKey string, ascending bool) ([]T, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	dir := 1
	if !ascending {
		dir = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: dir}})

	cur, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, common.ValidateInternalError(err, s.desc.CollectionName)
	}
	defer cur.Close(ctx)

	var results []T
	if err := cur.All(ctx, &results); err != nil {
		return nil, common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return results, nil
}

// FindOne returns the single document matching query.
func (s *Store[T]) FindOne(ctx context.Context, query bson.M) (T, error) {
	var zero T

	coll, err := s.collection(ctx)
	if err != nil {
		return zero, err
	}

	var result T
	if err := coll.FindOne(ctx, query).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.WrapEntityNotFoundError(s.desc.CollectionName, err)
		}

		return zero, common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return result, nil
}

// Insert persists value and returns it rehydrated from the store so
// defaults applied by the driver are normalized into the return value.
func (s *Store[T]) Insert(ctx context.Context, id string, value T) (T, error) {
	var zero T

	coll, err := s.collection(ctx)
	if err != nil {
		return zero, err
	}

	if _, err := coll.InsertOne(ctx, value); err != nil {
		return zero, common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return s.FindOne(ctx, bson.M{"id": id})
}

// UpdateOne applies update to the first document matching query, returning
// the count of modified documents.
func (s *Store[T]) UpdateOne(ctx context.Context, query, update bson.M) (int64, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return 0, err
	}

	res, err := coll.UpdateOne(ctx, query, update)
	if err != nil {
		return 0, common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return res.ModifiedCount, nil
}

// UpdateMany applies update to every document matching query, returning
// the count of modified documents.
func (s *Store[T]) UpdateMany(ctx context.Context, query, update bson.M) (int64, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return 0, err
	}

	res, err := coll.UpdateMany(ctx, query, update)
	if err != nil {
		return 0, common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return res.ModifiedCount, nil
}

// FindAndUpdate applies update to the document matching query and returns
// the post-update document.
func (s *Store[T]) FindAndUpdate(ctx context.Context, query, update bson.M) (T, error) {
	var zero T

	coll, err := s.collection(ctx)
	if err != nil {
		return zero, err
	}

	after := options.After

	var result T
	err = coll.FindOneAndUpdate(ctx, query, update, &options.FindOneAndUpdateOptions{ReturnDocument: &after}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.WrapEntityNotFoundError(s.desc.CollectionName, err)
		}

		return zero, common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return result, nil
}

// Delete removes every document matching query.
func (s *Store[T]) Delete(ctx context.Context, query bson.M) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.DeleteOne(ctx, query); err != nil {
		return common.ValidateInternalError(err, s.desc.CollectionName)
	}

	return nil
}

// SetStatus sets the status field of the document identified by id.
func (s *Store[T]) SetStatus(ctx context.Context, id string, status shared.Status) error {
	_, err := s.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	return err
}

// FindByParent returns every document whose parent field equals parentID.
// It panics if the descriptor declares no parent — callers are expected to
// check HasParent statically, the same contract as the teacher's
// parent-field conventions.
func (s *Store[T]) FindByParent(ctx context.Context, parentID string) ([]T, error) {
	return s.FindMany(ctx, bson.M{s.desc.ParentField: parentID})
}
