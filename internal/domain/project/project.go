// Package project holds the Project entity: the root of the ownership and
// access-control hierarchy.
package project

import (
	"github.com/scidatahub/vault/internal/domain/shared"
)

// ProjectUser is one grant of Rights to a user on a Project.
type ProjectUser struct {
	UserID string        `bson:"user_id"`
	Rights shared.Rights `bson:"rights"`
}

// Project is the root entity. It has no parent.
type Project struct {
	shared.Common `bson:",inline"`
	Users         []ProjectUser `bson:"users,omitempty"`
}

// CollectionName is the Mongo collection Projects are persisted in.
const CollectionName = "project"

// ParentFieldName reports the absence of a parent for Project.
func ParentFieldName() (string, bool) { return "", false }

// HasRight reports whether userID holds want on the project.
func (p *Project) HasRight(userID string, want shared.Right) bool {
	for _, u := range p.Users {
		if u.UserID == userID {
			return u.Rights.Has(want)
		}
	}

	return false
}
