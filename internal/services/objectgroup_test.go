package services

import (
	"context"
	"testing"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/adapters/objectstore"
	"github.com/scidatahub/vault/internal/domain/objectgroup"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeObjectGroupStore is an in-memory stand-in for
// mongodb.Store[*objectgroup.ObjectGroup], keyed by id.
type fakeObjectGroupStore struct {
	groups map[string]*objectgroup.ObjectGroup
}

func newFakeObjectGroupStore() *fakeObjectGroupStore {
	return &fakeObjectGroupStore{groups: map[string]*objectgroup.ObjectGroup{}}
}

func (s *fakeObjectGroupStore) Insert(_ context.Context, id string, value *objectgroup.ObjectGroup) (*objectgroup.ObjectGroup, error) {
	s.groups[id] = value
	return value, nil
}

func (s *fakeObjectGroupStore) FindOne(_ context.Context, query bson.M) (*objectgroup.ObjectGroup, error) {
	id, _ := query["id"].(string)

	g, ok := s.groups[id]
	if !ok {
		return nil, common.NewEntityNotFoundError("ObjectGroup")
	}

	return g, nil
}

func (s *fakeObjectGroupStore) FindByParent(_ context.Context, parentID string) ([]*objectgroup.ObjectGroup, error) {
	var out []*objectgroup.ObjectGroup

	for _, g := range s.groups {
		if g.DatasetID == parentID {
			out = append(out, g)
		}
	}

	return out, nil
}

func (s *fakeObjectGroupStore) IncrementRevisionCounter(_ context.Context, groupID string) (*objectgroup.ObjectGroup, error) {
	g, ok := s.groups[groupID]
	if !ok {
		return nil, common.NewEntityNotFoundError("ObjectGroup")
	}

	g.RevisionCounter++

	return g, nil
}

func (s *fakeObjectGroupStore) UpdateOne(_ context.Context, query, update bson.M) (int64, error) {
	id, _ := query["id"].(string)

	g, ok := s.groups[id]
	if !ok {
		return 0, nil
	}

	set, _ := update["$set"].(bson.M)
	if headID, ok := set["head_id"].(string); ok {
		g.HeadID = headID
	}

	return 1, nil
}

func (s *fakeObjectGroupStore) SetStatus(_ context.Context, id string, status shared.Status) error {
	g, ok := s.groups[id]
	if !ok {
		return nil
	}

	g.Status = status

	return nil
}

func (s *fakeObjectGroupStore) Delete(_ context.Context, query bson.M) error {
	id, _ := query["id"].(string)
	delete(s.groups, id)

	return nil
}

// fakeRevisionStore is an in-memory stand-in for
// mongodb.Store[*objectgroup.Revision], keyed by id.
type fakeRevisionStore struct {
	revisions map[string]*objectgroup.Revision
}

func newFakeRevisionStore() *fakeRevisionStore {
	return &fakeRevisionStore{revisions: map[string]*objectgroup.Revision{}}
}

func (s *fakeRevisionStore) Insert(_ context.Context, id string, value *objectgroup.Revision) (*objectgroup.Revision, error) {
	s.revisions[id] = value
	return value, nil
}

func (s *fakeRevisionStore) FindOne(_ context.Context, query bson.M) (*objectgroup.Revision, error) {
	if id, ok := query["id"].(string); ok {
		if r, found := s.revisions[id]; found {
			if groupID, ok := query["object_group_id"].(string); ok && r.ObjectGroupID != groupID {
				return nil, common.NewEntityNotFoundError("ObjectGroupRevision")
			}

			return r, nil
		}

		return nil, common.NewEntityNotFoundError("ObjectGroupRevision")
	}

	if groupID, ok := query["object_group_id"].(string); ok {
		if revNum, ok := query["revision"].(int64); ok {
			for _, r := range s.revisions {
				if r.ObjectGroupID == groupID && r.Revision == revNum {
					return r, nil
				}
			}
		}

		if ids, ok := query["id"].(bson.M); ok {
			in, _ := ids["$in"].([]string)
			for _, r := range s.revisions {
				if r.ObjectGroupID != groupID {
					continue
				}

				for _, id := range in {
					if r.ID == id {
						return r, nil
					}
				}
			}
		}
	}

	return nil, common.NewEntityNotFoundError("ObjectGroupRevision")
}

func (s *fakeRevisionStore) FindMany(_ context.Context, query bson.M) ([]*objectgroup.Revision, error) {
	groupID, hasGroup := query["object_group_id"].(string)

	var out []*objectgroup.Revision

	for _, r := range s.revisions {
		if hasGroup && r.ObjectGroupID != groupID {
			continue
		}

		out = append(out, r)
	}

	return out, nil
}

func (s *fakeRevisionStore) FindManySorted(ctx context.Context, query bson.M, _ string, _ bool) ([]*objectgroup.Revision, error) {
	return s.FindMany(ctx, query)
}

func (s *fakeRevisionStore) SetStatus(_ context.Context, id string, status shared.Status) error {
	r, ok := s.revisions[id]
	if !ok {
		return nil
	}

	r.Status = status

	return nil
}

func (s *fakeRevisionStore) Delete(_ context.Context, query bson.M) error {
	id, _ := query["id"].(string)
	delete(s.revisions, id)

	return nil
}

func (s *fakeRevisionStore) FindObject(_ context.Context, objectID string) (*objectgroup.Revision, *objectgroup.Object, error) {
	for _, r := range s.revisions {
		for i := range r.Objects {
			if r.Objects[i].ID == objectID {
				obj := r.Objects[i]
				return r, &obj, nil
			}
		}
	}

	return nil, nil, common.NewEntityNotFoundError("Object")
}

func (s *fakeRevisionStore) UpdateObject(_ context.Context, obj objectgroup.Object) error {
	for _, r := range s.revisions {
		for i := range r.Objects {
			if r.Objects[i].ID == obj.ID {
				r.Objects[i] = obj
				return nil
			}
		}
	}

	return common.NewEntityNotFoundError("Object")
}

func (s *fakeRevisionStore) LinkDatasetVersion(_ context.Context, revisionIDs []string, versionID string) (int64, error) {
	var count int64

	for _, id := range revisionIDs {
		if r, ok := s.revisions[id]; ok {
			r.DatasetVersions = append(r.DatasetVersions, versionID)
			count++
		}
	}

	return count, nil
}

func (s *fakeRevisionStore) UnlinkDatasetVersion(_ context.Context, datasetID, versionID string) (int64, error) {
	var count int64

	for _, r := range s.revisions {
		if r.DatasetID != datasetID {
			continue
		}

		kept := r.DatasetVersions[:0]

		for _, v := range r.DatasetVersions {
			if v != versionID {
				kept = append(kept, v)
			}
		}

		r.DatasetVersions = kept
		count++
	}

	return count, nil
}

// fakeObjectStore is an in-memory stand-in for objectstore.Adapter.
type fakeObjectStore struct {
	deleted []objectgroup.Location
}

func (s *fakeObjectStore) MakeLocation(projectID, datasetID, objectID, filename string) objectgroup.Location {
	return objectgroup.Location{Bucket: "test-bucket", Key: projectID + "/" + datasetID + "/" + objectID + "/" + filename}
}

func (s *fakeObjectStore) PresignGet(_ context.Context, loc objectgroup.Location) (string, error) {
	return "https://example.test/get/" + loc.Key, nil
}

func (s *fakeObjectStore) PresignPut(_ context.Context, loc objectgroup.Location) (string, error) {
	return "https://example.test/put/" + loc.Key, nil
}

func (s *fakeObjectStore) MultipartInit(_ context.Context, _ objectgroup.Location) (string, error) {
	return "upload-1", nil
}

func (s *fakeObjectStore) MultipartPresignPart(_ context.Context, loc objectgroup.Location, uploadID string, partNo int32) (string, error) {
	return "https://example.test/part/" + loc.Key, nil
}

func (s *fakeObjectStore) MultipartComplete(_ context.Context, _ objectgroup.Location, _ string, _ []objectstore.UploadPart) error {
	return nil
}

func (s *fakeObjectStore) Delete(_ context.Context, loc objectgroup.Location) error {
	s.deleted = append(s.deleted, loc)
	return nil
}

func newTestObjectGroupHandlers() (*Handlers, *fakeObjectGroupStore, *fakeRevisionStore, *fakeObjectStore) {
	groups := newFakeObjectGroupStore()
	revisions := newFakeRevisionStore()
	objects := &fakeObjectStore{}

	return &Handlers{
		Groups:    groups,
		Revisions: revisions,
		Objects:   objects,
	}, groups, revisions, objects
}

func TestCreateObjectGroupInsertsGroupAndFirstRevision(t *testing.T) {
	h, groups, revisions, _ := newTestObjectGroupHandlers()

	group, revision, err := h.CreateObjectGroup(context.Background(), "dataset-1", "project-1", "group-name", []ObjectSpec{
		{Filename: "a.txt", Filetype: "text/plain", ContentLen: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), group.RevisionCounter)
	assert.Equal(t, revision.ID, group.HeadID)
	assert.Equal(t, int64(0), revision.Revision)
	assert.Len(t, revision.Objects, 1)
	assert.Len(t, groups.groups, 1)
	assert.Len(t, revisions.revisions, 1)
}

func TestAddRevisionToObjectGroupIncrementsCounter(t *testing.T) {
	h, _, _, _ := newTestObjectGroupHandlers()

	group, _, err := h.CreateObjectGroup(context.Background(), "dataset-1", "project-1", "group-name", nil)
	require.NoError(t, err)

	second, err := h.AddRevisionToObjectGroup(context.Background(), group.ID, "project-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Revision)
}

func TestDeleteObjectGroupRejectsUnknownGroup(t *testing.T) {
	h, _, _, _ := newTestObjectGroupHandlers()

	err := h.DeleteObjectGroup(context.Background(), "does-not-exist")
	assert.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}

func TestDeleteObjectGroupTwiceReturnsNotFoundSecondTime(t *testing.T) {
	h, _, _, objects := newTestObjectGroupHandlers()

	group, _, err := h.CreateObjectGroup(context.Background(), "dataset-1", "project-1", "group-name", []ObjectSpec{
		{Filename: "a.txt", Filetype: "text/plain", ContentLen: 10},
	})
	require.NoError(t, err)

	require.NoError(t, h.DeleteObjectGroup(context.Background(), group.ID))
	assert.Len(t, objects.deleted, 1)

	err = h.DeleteObjectGroup(context.Background(), group.ID)
	assert.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}

func TestDeleteObjectGroupRevisionRejectsReferencedRevision(t *testing.T) {
	h, _, revisions, _ := newTestObjectGroupHandlers()

	group, revision, err := h.CreateObjectGroup(context.Background(), "dataset-1", "project-1", "group-name", nil)
	require.NoError(t, err)

	revisions.revisions[revision.ID].DatasetVersions = []string{"version-1"}

	err = h.DeleteObjectGroupRevision(context.Background(), revision.ID)
	assert.Error(t, err)
	assert.False(t, common.IsNotFound(err))

	_, stillThere := revisions.revisions[revision.ID]
	assert.True(t, stillThere)
	_ = group
}

func TestGetObjectGroupRevisionByNumber(t *testing.T) {
	h, _, _, _ := newTestObjectGroupHandlers()

	group, _, err := h.CreateObjectGroup(context.Background(), "dataset-1", "project-1", "group-name", nil)
	require.NoError(t, err)

	_, err = h.AddRevisionToObjectGroup(context.Background(), group.ID, "project-1", nil)
	require.NoError(t, err)

	revNo := int64(1)
	r, err := h.GetObjectGroupRevision(context.Background(), group.ID, RevisionRef{RevisionNumber: &revNo})
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Revision)
}

func TestGetObjectGroupRevisionRequiresAReference(t *testing.T) {
	h, _, _, _ := newTestObjectGroupHandlers()

	_, err := h.GetObjectGroupRevision(context.Background(), "group-1", RevisionRef{})
	assert.Error(t, err)
}
