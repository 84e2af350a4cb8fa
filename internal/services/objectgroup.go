package services

import (
	"time"

	"context"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/concurrency"
	"github.com/scidatahub/vault/internal/domain/objectgroup"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ObjectSpec describes one Object to create within a new Revision.
type ObjectSpec struct {
	Filename   string
	Filetype   string
	ContentLen int64
}

// RevisionRef selects a Revision of an ObjectGroup, by exactly one field.
type RevisionRef struct {
	RevisionID     string
	RevisionNumber *int64
	VersionTag     string
}

func (h *Handlers) buildObjects(projectID, datasetID string, specs []ObjectSpec) []objectgroup.Object {
	now := time.Now().UTC()

	objects := make([]objectgroup.Object, 0, len(specs))

	for _, spec := range specs {
		id := uuid.NewString()

		objects = append(objects, objectgroup.Object{
			ID:         id,
			Filename:   spec.Filename,
			Filetype:   spec.Filetype,
			ContentLen: spec.ContentLen,
			Location:   h.Objects.MakeLocation(projectID, datasetID, id, spec.Filename),
			Created:    now,
		})
	}

	return objects
}

// CreateObjectGroup inserts a new ObjectGroup and, per spec.md §4.4, its
// first Revision in a single call: insert the group with revision_counter
// 0, find-and-update to atomically claim revision 0, then insert the
// Revision with the post-update counter minus one.
func (h *Handlers) CreateObjectGroup(ctx context.Context, datasetID, projectID, name string, specs []ObjectSpec) (*objectgroup.ObjectGroup, *objectgroup.Revision, error) {
	now := time.Now().UTC()
	groupID := uuid.NewString()

	g := &objectgroup.ObjectGroup{
		Common: shared.Common{
			ID:        groupID,
			Name:      name,
			Status:    shared.StatusInitializing,
			CreatedAt: now,
			UpdatedAt: now,
		},
		DatasetID:       datasetID,
		RevisionCounter: 0,
	}

	if _, err := h.Groups.Insert(ctx, groupID, g); err != nil {
		return nil, nil, err
	}

	revision, err := h.appendRevision(ctx, groupID, datasetID, projectID, specs)
	if err != nil {
		return nil, nil, err
	}

	updated, err := h.Groups.FindOne(ctx, bson.M{"id": groupID})
	if err != nil {
		return nil, nil, err
	}

	return updated, revision, nil
}

// AddRevisionToObjectGroup appends a new Revision to an existing
// ObjectGroup. Concurrent appends serialize on the metadata store's atomic
// $inc, each receiving a distinct, monotonically increasing revision
// number.
func (h *Handlers) AddRevisionToObjectGroup(ctx context.Context, groupID, projectID string, specs []ObjectSpec) (*objectgroup.Revision, error) {
	g, err := h.Groups.FindOne(ctx, bson.M{"id": groupID})
	if err != nil {
		return nil, err
	}

	return h.appendRevision(ctx, groupID, g.DatasetID, projectID, specs)
}

func (h *Handlers) appendRevision(ctx context.Context, groupID, datasetID, projectID string, specs []ObjectSpec) (*objectgroup.Revision, error) {
	updated, err := h.Groups.IncrementRevisionCounter(ctx, groupID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	revisionID := uuid.NewString()

	r := &objectgroup.Revision{
		Common: shared.Common{
			ID:        revisionID,
			Name:      updated.Name,
			Status:    shared.StatusInitializing,
			CreatedAt: now,
			UpdatedAt: now,
		},
		ObjectGroupID: groupID,
		DatasetID:     datasetID,
		Revision:      updated.RevisionCounter - 1,
		Objects:       h.buildObjects(projectID, datasetID, specs),
	}

	inserted, err := h.Revisions.Insert(ctx, revisionID, r)
	if err != nil {
		return nil, err
	}

	if _, err := h.Groups.UpdateOne(ctx, bson.M{"id": groupID}, bson.M{"$set": bson.M{"head_id": revisionID}}); err != nil {
		return nil, err
	}

	return inserted, nil
}

// GetObjectGroup returns the ObjectGroup with the given id.
func (h *Handlers) GetObjectGroup(ctx context.Context, id string) (*objectgroup.ObjectGroup, error) {
	return h.Groups.FindOne(ctx, bson.M{"id": id})
}

// GetObjectGroupRevisions returns every Revision of groupID, in increasing
// revision order.
func (h *Handlers) GetObjectGroupRevisions(ctx context.Context, groupID string) ([]*objectgroup.Revision, error) {
	return h.Revisions.FindManySorted(ctx, bson.M{"object_group_id": groupID}, "revision", true)
}

// GetCurrentObjectGroupRevision returns groupID's head Revision.
func (h *Handlers) GetCurrentObjectGroupRevision(ctx context.Context, groupID string) (*objectgroup.Revision, error) {
	g, err := h.Groups.FindOne(ctx, bson.M{"id": groupID})
	if err != nil {
		return nil, err
	}

	if g.HeadID == "" {
		return nil, common.NewEntityNotFoundError("ObjectGroupRevision")
	}

	return h.Revisions.FindOne(ctx, bson.M{"id": g.HeadID})
}

// GetObjectGroupRevision resolves ref against groupID: by revision id, by
// revision number, or by a DatasetVersion's version tag (the revision of
// this group that the named version froze).
func (h *Handlers) GetObjectGroupRevision(ctx context.Context, groupID string, ref RevisionRef) (*objectgroup.Revision, error) {
	switch {
	case ref.RevisionID != "":
		return h.Revisions.FindOne(ctx, bson.M{"id": ref.RevisionID, "object_group_id": groupID})

	case ref.RevisionNumber != nil:
		return h.Revisions.FindOne(ctx, bson.M{"object_group_id": groupID, "revision": *ref.RevisionNumber})

	case ref.VersionTag != "":
		v, err := h.Versions.FindOne(ctx, bson.M{"id": ref.VersionTag})
		if err != nil {
			return nil, err
		}

		return h.Revisions.FindOne(ctx, bson.M{"object_group_id": groupID, "id": bson.M{"$in": v.ObjectGroupIDs}})

	default:
		return nil, common.ValidationError{EntityType: "ObjectGroupRevision", Message: "reference_type of a revision lookup is unsupported"}
	}
}

// FinishObjectUpload flips the ObjectGroup's status to Available — the
// user-driven signal that every object in every revision has been
// uploaded.
func (h *Handlers) FinishObjectUpload(ctx context.Context, groupID string) error {
	return h.Groups.SetStatus(ctx, groupID, shared.StatusAvailable)
}

// DeleteObjectGroup marks groupID Deleting, deletes every child Revision
// (concurrently, via the revision delete rule), then the group document.
func (h *Handlers) DeleteObjectGroup(ctx context.Context, groupID string) error {
	if _, err := h.Groups.FindOne(ctx, bson.M{"id": groupID}); err != nil {
		return err
	}

	if err := h.Groups.SetStatus(ctx, groupID, shared.StatusDeleting); err != nil {
		return err
	}

	revisions, err := h.Revisions.FindMany(ctx, bson.M{"object_group_id": groupID})
	if err != nil {
		return err
	}

	err = concurrency.FanOut(ctx, concurrency.DefaultWindow, revisions, func(ctx context.Context, r *objectgroup.Revision) error {
		return h.deleteRevision(ctx, r)
	})
	if err != nil {
		return err
	}

	return h.Groups.Delete(ctx, bson.M{"id": groupID})
}

// DeleteObjectGroupRevision deletes a single Revision, rejecting the
// request with invalid-argument if any DatasetVersion still references it
// (invariant 4).
func (h *Handlers) DeleteObjectGroupRevision(ctx context.Context, revisionID string) error {
	r, err := h.Revisions.FindOne(ctx, bson.M{"id": revisionID})
	if err != nil {
		return err
	}

	return h.deleteRevision(ctx, r)
}

func (h *Handlers) deleteRevision(ctx context.Context, r *objectgroup.Revision) error {
	if !r.Deletable() {
		return common.ValidationError{
			EntityType: "ObjectGroupRevision",
			Message:    "revision is referenced by a dataset version and cannot be deleted",
		}
	}

	if err := h.Revisions.SetStatus(ctx, r.ID, shared.StatusDeleting); err != nil {
		return err
	}

	err := concurrency.FanOut(ctx, concurrency.DefaultWindow, r.Objects, func(ctx context.Context, obj objectgroup.Object) error {
		return h.Objects.Delete(ctx, obj.Location)
	})
	if err != nil {
		return err
	}

	return h.Revisions.Delete(ctx, bson.M{"id": r.ID})
}
