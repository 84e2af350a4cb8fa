package dataset

import (
	"testing"

	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestNewVersion(t *testing.T) {
	revisionIDs := []string{"rev-1", "rev-2", "rev-3"}

	v := NewVersion("version-1", "dataset-1", "v1.0", revisionIDs)

	assert.Equal(t, "version-1", v.ID)
	assert.Equal(t, "dataset-1", v.DatasetID)
	assert.Equal(t, "v1.0", v.Name)
	assert.Equal(t, shared.StatusAvailable, v.Status)
	assert.Equal(t, revisionIDs, v.ObjectGroupIDs)
	assert.Equal(t, len(revisionIDs), v.ObjectCount)
	assert.False(t, v.CreatedAt.IsZero())
	assert.Equal(t, v.CreatedAt, v.UpdatedAt)
}

func TestNewVersionCopiesRevisionIDs(t *testing.T) {
	revisionIDs := []string{"rev-1"}

	v := NewVersion("version-1", "dataset-1", "v1.0", revisionIDs)

	revisionIDs[0] = "mutated"

	assert.Equal(t, "rev-1", v.ObjectGroupIDs[0])
}

func TestDatasetParentFieldName(t *testing.T) {
	field, hasParent := ParentFieldName()

	assert.Equal(t, "project_id", field)
	assert.True(t, hasParent)
}
