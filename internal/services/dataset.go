package services

import (
	"context"
	"time"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/adapters/identity"
	"github.com/scidatahub/vault/internal/concurrency"
	"github.com/scidatahub/vault/internal/domain/dataset"
	"github.com/scidatahub/vault/internal/domain/objectgroup"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// releaseChunkSize bounds how many revision ids are linked per update_many
// call during ReleaseDatasetVersion, per spec.md §4.4.
const releaseChunkSize = 1000

// CreateDataset inserts a new Dataset under projectID.
func (h *Handlers) CreateDataset(ctx context.Context, projectID, name string, isPublic bool) (*dataset.Dataset, error) {
	now := time.Now().UTC()
	id := uuid.NewString()

	d := &dataset.Dataset{
		Common: shared.Common{
			ID:        id,
			Name:      name,
			Status:    shared.StatusAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProjectID: projectID,
		IsPublic:  isPublic,
	}

	return h.Datasets.Insert(ctx, id, d)
}

// GetDataset returns the Dataset with the given id.
func (h *Handlers) GetDataset(ctx context.Context, id string) (*dataset.Dataset, error) {
	return h.Datasets.FindOne(ctx, bson.M{"id": id})
}

// GetDatasetVersions returns every DatasetVersion of datasetID.
func (h *Handlers) GetDatasetVersions(ctx context.Context, datasetID string) ([]*dataset.Version, error) {
	return h.Versions.FindByParent(ctx, datasetID)
}

// GetDatasetObjectGroups returns every ObjectGroup of datasetID.
func (h *Handlers) GetDatasetObjectGroups(ctx context.Context, datasetID string) ([]*objectgroup.ObjectGroup, error) {
	return h.Groups.FindByParent(ctx, datasetID)
}

// GetCurrentObjectGroupRevisions returns the head revision of every
// ObjectGroup in datasetID.
func (h *Handlers) GetCurrentObjectGroupRevisions(ctx context.Context, datasetID string) ([]*objectgroup.Revision, error) {
	groups, err := h.Groups.FindByParent(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	revisions := make([]*objectgroup.Revision, 0, len(groups))

	for _, g := range groups {
		if g.HeadID == "" {
			continue
		}

		r, err := h.Revisions.FindOne(ctx, bson.M{"id": g.HeadID})
		if err != nil {
			if common.IsNotFound(err) {
				continue
			}

			return nil, err
		}

		revisions = append(revisions, r)
	}

	return revisions, nil
}

// GetDatasetVersion returns the DatasetVersion with the given id.
func (h *Handlers) GetDatasetVersion(ctx context.Context, id string) (*dataset.Version, error) {
	return h.Versions.FindOne(ctx, bson.M{"id": id})
}

// GetDatasetVersionRevisions returns the Revisions frozen by versionID.
func (h *Handlers) GetDatasetVersionRevisions(ctx context.Context, versionID string) ([]*objectgroup.Revision, error) {
	v, err := h.Versions.FindOne(ctx, bson.M{"id": versionID})
	if err != nil {
		return nil, err
	}

	return h.Revisions.FindMany(ctx, bson.M{"id": bson.M{"$in": v.ObjectGroupIDs}})
}

// ReleaseDatasetVersion implements spec.md §4.4's release algorithm: the
// caller must already hold Write on the Dataset (checked by the facade);
// this handler additionally authorizes Write on every named revision
// concurrently (fan-out 100) before freezing the version.
func (h *Handlers) ReleaseDatasetVersion(ctx context.Context, caller identity.Identity, datasetID, name string, revisionIDs []string) (*dataset.Version, error) {
	err := concurrency.FanOut(ctx, concurrency.DefaultWindow, revisionIDs, func(ctx context.Context, revisionID string) error {
		return h.Auth.Authorize(ctx, caller, shared.ResourceObjectGroupRevision, revisionID, shared.RightWrite)
	})
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	v := dataset.NewVersion(id, datasetID, name, revisionIDs)

	inserted, err := h.Versions.Insert(ctx, id, v)
	if err != nil {
		return nil, err
	}

	chunks := chunkStrings(revisionIDs, releaseChunkSize)

	err = concurrency.FanOut(ctx, concurrency.DefaultWindow, chunks, func(ctx context.Context, chunk []string) error {
		_, err := h.Revisions.LinkDatasetVersion(ctx, chunk, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return inserted, nil
}

func chunkStrings(items []string, size int) [][]string {
	var chunks [][]string

	for len(items) > 0 {
		n := size
		if n > len(items) {
			n = len(items)
		}

		chunks = append(chunks, items[:n])
		items = items[n:]
	}

	return chunks
}

// DeleteDatasetVersion marks versionID Deleting, removes it from every
// revision's dataset_versions reverse index, then deletes the document.
func (h *Handlers) DeleteDatasetVersion(ctx context.Context, id string) error {
	v, err := h.Versions.FindOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}

	if err := h.Versions.SetStatus(ctx, id, shared.StatusDeleting); err != nil {
		return err
	}

	if _, err := h.Revisions.UnlinkDatasetVersion(ctx, v.DatasetID, id); err != nil {
		return err
	}

	return h.Versions.Delete(ctx, bson.M{"id": id})
}

// DeleteDataset cascades: child DatasetVersions, then child ObjectGroups
// (which recursively delete their Revisions), then the dataset document.
func (h *Handlers) DeleteDataset(ctx context.Context, id string) error {
	if _, err := h.Datasets.FindOne(ctx, bson.M{"id": id}); err != nil {
		return err
	}

	if err := h.Datasets.SetStatus(ctx, id, shared.StatusDeleting); err != nil {
		return err
	}

	versions, err := h.Versions.FindByParent(ctx, id)
	if err != nil {
		return err
	}

	err = concurrency.FanOut(ctx, concurrency.DefaultWindow, versions, func(ctx context.Context, v *dataset.Version) error {
		return h.DeleteDatasetVersion(ctx, v.ID)
	})
	if err != nil {
		return err
	}

	groups, err := h.Groups.FindByParent(ctx, id)
	if err != nil {
		return err
	}

	err = concurrency.FanOut(ctx, concurrency.DefaultWindow, groups, func(ctx context.Context, g *objectgroup.ObjectGroup) error {
		return h.DeleteObjectGroup(ctx, g.ID)
	})
	if err != nil {
		return err
	}

	return h.Datasets.Delete(ctx, bson.M{"id": id})
}
