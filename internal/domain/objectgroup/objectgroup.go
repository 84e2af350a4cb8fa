// Package objectgroup holds the ObjectGroup, ObjectGroupRevision, and
// embedded Object entities — the append-only revision ladder inside a
// Dataset.
package objectgroup

import (
	"time"

	"github.com/scidatahub/vault/internal/domain/shared"
)

// ObjectGroup is a mutable, append-only collection of revisions.
type ObjectGroup struct {
	shared.Common   `bson:",inline"`
	DatasetID       string `bson:"dataset_id"`
	RevisionCounter int64  `bson:"revision_counter"`
	HeadID          string `bson:"head_id,omitempty"`
}

// CollectionName is the Mongo collection ObjectGroups are persisted in.
const CollectionName = "ObjectGroup"

// ParentFieldName is the field used to look up ObjectGroups by their owning Dataset.
func ParentFieldName() (string, bool) { return "dataset_id", true }

// LocationIndex marks the byte range of an Object within a larger payload,
// when applicable.
type LocationIndex struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

// Location is where an Object's payload lives in the object store.
type Location struct {
	Bucket string        `bson:"bucket"`
	Key    string        `bson:"key"`
	URL    string        `bson:"url,omitempty"`
	Type   string        `bson:"type,omitempty"`
	Index  LocationIndex `bson:"index,omitempty"`
}

// Object is a single binary payload, always embedded inside a Revision.
// Its id is globally unique across the corpus and searchable by objects.id.
type Object struct {
	ID         string    `bson:"id"`
	Filename   string    `bson:"filename"`
	Filetype   string    `bson:"filetype"`
	ContentLen int64     `bson:"content_len"`
	Location   Location  `bson:"location"`
	UploadID   string    `bson:"upload_id,omitempty"`
	Created    time.Time `bson:"created"`
}

// InProgress reports whether the Object has a multipart upload in flight.
func (o *Object) InProgress() bool { return o.UploadID != "" }

// Revision is an immutable snapshot inside an ObjectGroup.
type Revision struct {
	shared.Common   `bson:",inline"`
	ObjectGroupID   string   `bson:"object_group_id"`
	DatasetID       string   `bson:"dataset_id"`
	Revision        int64    `bson:"revision"`
	Objects         []Object `bson:"objects"`
	DatasetVersions []string `bson:"dataset_versions,omitempty"`
}

// RevisionCollectionName is the Mongo collection Revisions are persisted in.
const RevisionCollectionName = "ObjectGroupRevision"

// RevisionParentFieldName is the field used to look up Revisions by their owning Dataset.
func RevisionParentFieldName() (string, bool) { return "dataset_id", true }

// Deletable reports whether the revision may be deleted per invariant 4:
// a revision referenced by any DatasetVersion must not be deleted.
func (r *Revision) Deletable() bool { return len(r.DatasetVersions) == 0 }
