package identity

import (
	"context"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/domain/dataset"
	"github.com/scidatahub/vault/internal/domain/project"
	"github.com/scidatahub/vault/internal/domain/shared"
)

// ProjectLookup resolves a Project id to its entity.
type ProjectLookup func(ctx context.Context, id string) (*project.Project, error)

// DatasetLookup resolves a Dataset id to its entity.
type DatasetLookup func(ctx context.Context, id string) (*dataset.Dataset, error)

// DatasetIDLookup resolves the dataset_id of a DatasetVersion, ObjectGroup,
// or ObjectGroupRevision, keyed by resource kind and id.
type DatasetIDLookup func(ctx context.Context, resource shared.Resource, id string) (datasetID string, err error)

// RevisionByObjectLookup resolves the dataset_id of the Revision that
// embeds the Object with the given id.
type RevisionByObjectLookup func(ctx context.Context, objectID string) (datasetID string, err error)

// Authorizer implements the resource→project resolution algorithm of
// spec.md §4.3: given a Resource kind and id, find the owning Project,
// then check the caller holds the required Right on it. Resolution
// failures map to internal (not permission-denied) per spec.md — the
// caller's id was well-formed but internally unresolvable.
type Authorizer struct {
	lookupProject        ProjectLookup
	lookupDataset         DatasetLookup
	lookupDatasetID       DatasetIDLookup
	lookupRevisionByObject RevisionByObjectLookup
}

// NewAuthorizer constructs an Authorizer from the resolution callbacks
// supplied by the services layer, keeping this package free of a direct
// dependency on the Mongo store per spec.md §9's "no global mutable
// handler state" guidance.
func NewAuthorizer(lookupProject ProjectLookup, lookupDataset DatasetLookup, lookupDatasetID DatasetIDLookup, lookupRevisionByObject RevisionByObjectLookup) *Authorizer {
	return &Authorizer{
		lookupProject:         lookupProject,
		lookupDataset:         lookupDataset,
		lookupDatasetID:       lookupDatasetID,
		lookupRevisionByObject: lookupRevisionByObject,
	}
}

// Resolve walks a Resource kind and id back to its owning Project id.
func (a *Authorizer) Resolve(ctx context.Context, resource shared.Resource, id string) (string, error) {
	switch resource {
	case shared.ResourceProject:
		return id, nil

	case shared.ResourceDataset:
		ds, err := a.lookupDataset(ctx, id)
		if err != nil {
			return "", common.ValidateInternalError(err, string(resource))
		}

		return ds.ProjectID, nil

	case shared.ResourceDatasetVersion, shared.ResourceObjectGroup, shared.ResourceObjectGroupRevision:
		datasetID, err := a.lookupDatasetID(ctx, resource, id)
		if err != nil {
			return "", common.ValidateInternalError(err, string(resource))
		}

		return a.Resolve(ctx, shared.ResourceDataset, datasetID)

	case shared.ResourceObject:
		datasetID, err := a.lookupRevisionByObject(ctx, id)
		if err != nil {
			return "", common.ValidateInternalError(err, string(resource))
		}

		return a.Resolve(ctx, shared.ResourceDataset, datasetID)

	default:
		return "", common.ValidateInternalError(nil, string(resource))
	}
}

// Authorize resolves resource/id to its owning project and requires the
// identity hold want on it, per the two authorization regimes of
// spec.md §4.3.
func (a *Authorizer) Authorize(ctx context.Context, id Identity, resource shared.Resource, resourceID string, want shared.Right) error {
	projectID, err := a.Resolve(ctx, resource, resourceID)
	if err != nil {
		return err
	}

	if id.ViaAPIToken {
		if id.APITokenProject != projectID || !id.APITokenRights.HasAll(shared.Rights{want}) {
			return common.ForbiddenError{EntityType: string(resource), Message: "api token does not grant the required right on this project"}
		}

		return nil
	}

	proj, err := a.lookupProject(ctx, projectID)
	if err != nil {
		return common.ValidateInternalError(err, string(resource))
	}

	if !proj.HasRight(id.UserID, want) {
		return common.ForbiddenError{EntityType: string(resource), Message: "caller does not hold the required right on this project"}
	}

	return nil
}
