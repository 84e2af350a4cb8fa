package services

import (
	"context"

	"github.com/scidatahub/vault/internal/adapters/objectstore"
)

// CreateDownloadLink presigns a 1-hour GET URL for an already-uploaded Object.
func (h *Handlers) CreateDownloadLink(ctx context.Context, objectID string) (string, error) {
	_, obj, err := h.Revisions.FindObject(ctx, objectID)
	if err != nil {
		return "", err
	}

	return h.Objects.PresignGet(ctx, obj.Location)
}

// CreateUploadLink presigns a 1-hour PUT URL for an Object's single-shot
// (non-multipart) upload.
func (h *Handlers) CreateUploadLink(ctx context.Context, objectID string) (string, error) {
	_, obj, err := h.Revisions.FindObject(ctx, objectID)
	if err != nil {
		return "", err
	}

	return h.Objects.PresignPut(ctx, obj.Location)
}

// StartMultipartUpload implements init_multipart: it initiates the backend
// multipart upload and persists the assigned upload_id onto the embedded
// Object via the positional $ update.
func (h *Handlers) StartMultipartUpload(ctx context.Context, objectID string) (string, error) {
	_, obj, err := h.Revisions.FindObject(ctx, objectID)
	if err != nil {
		return "", err
	}

	uploadID, err := h.Objects.MultipartInit(ctx, obj.Location)
	if err != nil {
		return "", err
	}

	obj.UploadID = uploadID

	if err := h.Revisions.UpdateObject(ctx, *obj); err != nil {
		return "", err
	}

	return uploadID, nil
}

// GetMultipartUploadLink implements create_multipart_upload_link: it
// presigns a URL for one part of an in-flight multipart upload. It
// authorizes but never mutates state.
func (h *Handlers) GetMultipartUploadLink(ctx context.Context, objectID string, partNo int32) (string, error) {
	_, obj, err := h.Revisions.FindObject(ctx, objectID)
	if err != nil {
		return "", err
	}

	return h.Objects.MultipartPresignPart(ctx, obj.Location, obj.UploadID, partNo)
}

// CompleteMultipartUpload implements finish_multipart. Per spec.md §9's
// known wart, upload_id is deliberately left set on success — the Object's
// InProgress() reflects backend reality only until the next read, not a
// hard guarantee, and clearing it would require a second write this
// handler does not perform.
func (h *Handlers) CompleteMultipartUpload(ctx context.Context, objectID string, parts []objectstore.UploadPart) error {
	_, obj, err := h.Revisions.FindObject(ctx, objectID)
	if err != nil {
		return err
	}

	return h.Objects.MultipartComplete(ctx, obj.Location, obj.UploadID, parts)
}
