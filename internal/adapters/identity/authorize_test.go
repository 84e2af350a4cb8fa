package identity

import (
	"context"
	"testing"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/domain/dataset"
	"github.com/scidatahub/vault/internal/domain/project"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthorizer() *Authorizer {
	projects := map[string]*project.Project{
		"project-1": {
			Common: shared.Common{ID: "project-1"},
			Users:  []project.ProjectUser{{UserID: "alice", Rights: shared.Rights{shared.RightRead, shared.RightWrite}}},
		},
	}

	datasets := map[string]*dataset.Dataset{
		"dataset-1": {Common: shared.Common{ID: "dataset-1"}, ProjectID: "project-1"},
	}

	datasetIDs := map[shared.Resource]map[string]string{
		shared.ResourceDatasetVersion:      {"version-1": "dataset-1"},
		shared.ResourceObjectGroup:         {"group-1": "dataset-1"},
		shared.ResourceObjectGroupRevision: {"revision-1": "dataset-1"},
	}

	return NewAuthorizer(
		func(_ context.Context, id string) (*project.Project, error) {
			p, ok := projects[id]
			if !ok {
				return nil, common.WrapEntityNotFoundError("Project", nil)
			}

			return p, nil
		},
		func(_ context.Context, id string) (*dataset.Dataset, error) {
			d, ok := datasets[id]
			if !ok {
				return nil, common.WrapEntityNotFoundError("Dataset", nil)
			}

			return d, nil
		},
		func(_ context.Context, resource shared.Resource, id string) (string, error) {
			datasetID, ok := datasetIDs[resource][id]
			if !ok {
				return "", common.WrapEntityNotFoundError(string(resource), nil)
			}

			return datasetID, nil
		},
		func(_ context.Context, objectID string) (string, error) {
			if objectID == "object-1" {
				return "dataset-1", nil
			}

			return "", common.WrapEntityNotFoundError("Object", nil)
		},
	)
}

func TestAuthorizerResolve(t *testing.T) {
	a := newTestAuthorizer()

	testCases := []struct {
		name     string
		resource shared.Resource
		id       string
		want     string
	}{
		{"project resolves to itself", shared.ResourceProject, "project-1", "project-1"},
		{"dataset resolves to its project", shared.ResourceDataset, "dataset-1", "project-1"},
		{"dataset version resolves through dataset", shared.ResourceDatasetVersion, "version-1", "project-1"},
		{"object group resolves through dataset", shared.ResourceObjectGroup, "group-1", "project-1"},
		{"object group revision resolves through dataset", shared.ResourceObjectGroupRevision, "revision-1", "project-1"},
		{"object resolves through revision and dataset", shared.ResourceObject, "object-1", "project-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := a.Resolve(context.Background(), tc.resource, tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAuthorizerResolveUnknownResource(t *testing.T) {
	a := newTestAuthorizer()

	_, err := a.Resolve(context.Background(), shared.Resource("bogus"), "anything")
	assert.Error(t, err)
}

func TestAuthorizerAuthorizeByUserRight(t *testing.T) {
	a := newTestAuthorizer()

	id := Identity{UserID: "alice"}

	assert.NoError(t, a.Authorize(context.Background(), id, shared.ResourceDataset, "dataset-1", shared.RightWrite))

	forbidden := Identity{UserID: "mallory"}
	assert.Error(t, a.Authorize(context.Background(), forbidden, shared.ResourceDataset, "dataset-1", shared.RightRead))
}

func TestAuthorizerAuthorizeByAPIToken(t *testing.T) {
	a := newTestAuthorizer()

	scoped := Identity{ViaAPIToken: true, APITokenProject: "project-1", APITokenRights: shared.Rights{shared.RightRead}}
	assert.NoError(t, a.Authorize(context.Background(), scoped, shared.ResourceDataset, "dataset-1", shared.RightRead))

	wrongProject := Identity{ViaAPIToken: true, APITokenProject: "project-2", APITokenRights: shared.Rights{shared.RightRead, shared.RightWrite}}
	assert.Error(t, a.Authorize(context.Background(), wrongProject, shared.ResourceDataset, "dataset-1", shared.RightRead))

	missingRight := Identity{ViaAPIToken: true, APITokenProject: "project-1", APITokenRights: shared.Rights{shared.RightRead}}
	assert.Error(t, a.Authorize(context.Background(), missingRight, shared.ResourceDataset, "dataset-1", shared.RightWrite))
}
