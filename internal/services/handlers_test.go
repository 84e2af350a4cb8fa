package services

import (
	"context"
	"testing"

	"github.com/scidatahub/vault/common/mlog"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlersWiresEveryStoreAndAuthorizer(t *testing.T) {
	h := NewHandlers(nil, nil, &mlog.NoneLogger{})

	require.NotNil(t, h)
	assert.NotNil(t, h.Projects)
	assert.NotNil(t, h.Datasets)
	assert.NotNil(t, h.Versions)
	assert.NotNil(t, h.Groups)
	assert.NotNil(t, h.Revisions)
	assert.NotNil(t, h.APITokens)
	assert.NotNil(t, h.Auth)
	assert.Nil(t, h.Objects)
}

func TestLookupDatasetIDRejectsUnknownResource(t *testing.T) {
	h := NewHandlers(nil, nil, &mlog.NoneLogger{})

	_, err := h.lookupDatasetID(context.Background(), shared.ResourceProject, "p1")
	assert.Error(t, err)
}
