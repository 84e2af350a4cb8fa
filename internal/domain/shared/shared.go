// Package shared holds value types common to every persisted entity:
// lifecycle status, labels, metadata, and the Resource/Right enums used
// by the identity and authorization component.
package shared

import "time"

// Status is the lifecycle state of a persisted entity.
type Status string

// The five lifecycle states an entity may occupy. Archived and Updating
// are reserved for future use and are never assigned by this service.
const (
	StatusInitializing Status = "Initializing"
	StatusAvailable    Status = "Available"
	StatusUpdating     Status = "Updating"
	StatusArchived     Status = "Archived"
	StatusDeleting     Status = "Deleting"
)

// Right is a permission a user or APIToken may hold on a Project.
type Right string

// The two rights recognized by the authorization component.
const (
	RightRead  Right = "Read"
	RightWrite Right = "Write"
)

// Rights is a set of Right values with value equality.
type Rights []Right

// Has reports whether the set contains want.
func (r Rights) Has(want Right) bool {
	for _, right := range r {
		if right == want {
			return true
		}
	}

	return false
}

// HasAll reports whether the set is a superset of want.
func (r Rights) HasAll(want Rights) bool {
	for _, right := range want {
		if !r.Has(right) {
			return false
		}
	}

	return true
}

// Resource is a kind of addressable entity in the resource→project
// resolution algorithm.
type Resource string

// The six resource kinds the authorize algorithm knows how to resolve.
const (
	ResourceProject             Resource = "Project"
	ResourceDataset              Resource = "Dataset"
	ResourceDatasetVersion       Resource = "DatasetVersion"
	ResourceObjectGroup          Resource = "ObjectGroup"
	ResourceObjectGroupRevision  Resource = "ObjectGroupRevision"
	ResourceObject               Resource = "Object"
)

// Label is a free-form key/value pair attached to an entity.
type Label struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

// Schema tags a Metadata entry's structured payload. Only SimpleSchema is
// exercised by the core; OriginType/Schema variants are opaque pass-through
// per the design notes.
type Schema struct {
	SimpleSchema string `bson:"simple_schema,omitempty"`
}

// Metadata is a free-form structured metadata entry attached to an entity.
type Metadata struct {
	Key      string   `bson:"key"`
	Labels    []Label  `bson:"labels,omitempty"`
	Metadata  []byte   `bson:"metadata,omitempty"`
	Schema    *Schema  `bson:"schema,omitempty"`
}

// Common is the set of fields shared by every top-level persisted entity.
type Common struct {
	ID        string     `bson:"id"`
	Name      string     `bson:"name"`
	Labels    []Label    `bson:"labels,omitempty"`
	Metadata  []Metadata `bson:"metadata,omitempty"`
	Status    Status     `bson:"status"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
}
