package project

import (
	"testing"

	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestProjectHasRight(t *testing.T) {
	p := &Project{
		Users: []ProjectUser{
			{UserID: "alice", Rights: shared.Rights{shared.RightRead}},
			{UserID: "bob", Rights: shared.Rights{shared.RightRead, shared.RightWrite}},
		},
	}

	testCases := []struct {
		name   string
		userID string
		want   shared.Right
		expect bool
	}{
		{"alice has read", "alice", shared.RightRead, true},
		{"alice lacks write", "alice", shared.RightWrite, false},
		{"bob has write", "bob", shared.RightWrite, true},
		{"unknown user has nothing", "carol", shared.RightRead, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, p.HasRight(tc.userID, tc.want))
		})
	}
}

func TestProjectParentFieldName(t *testing.T) {
	field, hasParent := ParentFieldName()

	assert.Empty(t, field)
	assert.False(t, hasParent)
}
