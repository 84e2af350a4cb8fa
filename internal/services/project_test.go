package services

import (
	"testing"

	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
)

func TestRightsToStrings(t *testing.T) {
	testCases := []struct {
		name   string
		rights shared.Rights
		want   []string
	}{
		{"empty", shared.Rights{}, []string{}},
		{"single", shared.Rights{shared.RightRead}, []string{"Read"}},
		{"multiple preserves order", shared.Rights{shared.RightWrite, shared.RightRead}, []string{"Write", "Read"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rightsToStrings(tc.rights))
		})
	}
}
