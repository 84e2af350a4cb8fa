package services

import (
	"context"
	"testing"
	"time"

	"github.com/scidatahub/vault/internal/adapters/objectstore"
	"github.com/scidatahub/vault/internal/domain/objectgroup"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRevisionWithObject(revisions *fakeRevisionStore, objectID string) {
	revisions.revisions["revision-1"] = &objectgroup.Revision{
		Common: shared.Common{
			ID:        "revision-1",
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		},
		ObjectGroupID: "group-1",
		DatasetID:     "dataset-1",
		Objects: []objectgroup.Object{
			{ID: objectID, Filename: "payload.bin", Location: objectgroup.Location{Bucket: "test-bucket", Key: "k/" + objectID}},
		},
	}
}

func TestCreateDownloadLinkPresignsTheObjectsLocation(t *testing.T) {
	_, _, revisions, objects := newTestObjectGroupHandlers()
	seedRevisionWithObject(revisions, "object-1")

	h := &Handlers{Revisions: revisions, Objects: objects}

	url, err := h.CreateDownloadLink(context.Background(), "object-1")
	require.NoError(t, err)
	assert.Contains(t, url, "k/object-1")
}

func TestCreateDownloadLinkRejectsUnknownObject(t *testing.T) {
	_, _, revisions, objects := newTestObjectGroupHandlers()

	h := &Handlers{Revisions: revisions, Objects: objects}

	_, err := h.CreateDownloadLink(context.Background(), "missing")
	assert.Error(t, err)
}

func TestStartMultipartUploadPersistsUploadID(t *testing.T) {
	_, _, revisions, objects := newTestObjectGroupHandlers()
	seedRevisionWithObject(revisions, "object-1")

	h := &Handlers{Revisions: revisions, Objects: objects}

	uploadID, err := h.StartMultipartUpload(context.Background(), "object-1")
	require.NoError(t, err)
	assert.Equal(t, "upload-1", uploadID)

	_, obj, err := revisions.FindObject(context.Background(), "object-1")
	require.NoError(t, err)
	assert.Equal(t, "upload-1", obj.UploadID)
	assert.True(t, obj.InProgress())
}

func TestCompleteMultipartUploadLeavesUploadIDSet(t *testing.T) {
	_, _, revisions, objects := newTestObjectGroupHandlers()
	seedRevisionWithObject(revisions, "object-1")

	h := &Handlers{Revisions: revisions, Objects: objects}

	_, err := h.StartMultipartUpload(context.Background(), "object-1")
	require.NoError(t, err)

	err = h.CompleteMultipartUpload(context.Background(), "object-1", []objectstore.UploadPart{{ETag: "etag-1", PartNo: 1}})
	require.NoError(t, err)

	_, obj, err := revisions.FindObject(context.Background(), "object-1")
	require.NoError(t, err)
	assert.Equal(t, "upload-1", obj.UploadID, "upload_id is deliberately left set after finish_multipart")
}

func TestGetMultipartUploadLinkUsesObjectsUploadID(t *testing.T) {
	_, _, revisions, objects := newTestObjectGroupHandlers()
	seedRevisionWithObject(revisions, "object-1")

	h := &Handlers{Revisions: revisions, Objects: objects}

	_, err := h.StartMultipartUpload(context.Background(), "object-1")
	require.NoError(t, err)

	url, err := h.GetMultipartUploadLink(context.Background(), "object-1", 2)
	require.NoError(t, err)
	assert.Contains(t, url, "k/object-1")
}
