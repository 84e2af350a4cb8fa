// Package dataset holds the Dataset and DatasetVersion entities.
package dataset

import (
	"time"

	"github.com/scidatahub/vault/internal/domain/shared"
)

// Dataset is a named collection of object groups within a Project.
type Dataset struct {
	shared.Common `bson:",inline"`
	ProjectID     string `bson:"project_id"`
	IsPublic      bool   `bson:"is_public"`
}

// CollectionName is the Mongo collection Datasets are persisted in.
const CollectionName = "Dataset"

// ParentFieldName is the field used to look up Datasets by their owning Project.
func ParentFieldName() (string, bool) { return "project_id", true }

// Version is an immutable list of Revision ids that together define a
// release of a Dataset.
type Version struct {
	shared.Common  `bson:",inline"`
	DatasetID      string   `bson:"dataset_id"`
	ObjectGroupIDs []string `bson:"object_group_ids"`
	ObjectCount    int      `bson:"object_count"`
}

// VersionCollectionName is the Mongo collection DatasetVersions are persisted in.
const VersionCollectionName = "DatasetVersion"

// VersionParentFieldName is the field used to look up DatasetVersions by their owning Dataset.
func VersionParentFieldName() (string, bool) { return "dataset_id", true }

// NewVersion constructs a DatasetVersion snapshot over revisionIDs, with
// ObjectCount derived from the length of the frozen set per spec.md §4.4.
func NewVersion(id, datasetID, name string, revisionIDs []string) *Version {
	now := time.Now().UTC()

	return &Version{
		Common: shared.Common{
			ID:        id,
			Name:      name,
			Status:    shared.StatusAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		},
		DatasetID:      datasetID,
		ObjectGroupIDs: append([]string(nil), revisionIDs...),
		ObjectCount:    len(revisionIDs),
	}
}
