package mongodb

import (
	"context"

	"github.com/scidatahub/vault/internal/domain/project"

	"go.mongodb.org/mongo-driver/bson"
)

// ProjectDescriptor describes the project collection.
var ProjectDescriptor = EntityDescriptor{CollectionName: project.CollectionName}

// AddUser grants userID the given rights on the project. $addToSet compares
// the whole {user_id, rights} subdocument, so a user already present with a
// different right set would otherwise get a second, stale entry instead of
// an updated one; the $pull below drops any existing entry for userID first
// so the $addToSet that follows always leaves exactly one.
func (s *Store[T]) AddUser(ctx context.Context, projectID, userID string, rights []string) error {
	if _, err := s.UpdateOne(ctx,
		bson.M{"id": projectID},
		bson.M{"$pull": bson.M{"users": bson.M{"user_id": userID}}},
	); err != nil {
		return err
	}

	_, err := s.UpdateOne(ctx,
		bson.M{"id": projectID},
		bson.M{"$addToSet": bson.M{"users": bson.M{"user_id": userID, "rights": rights}}},
	)

	return err
}
