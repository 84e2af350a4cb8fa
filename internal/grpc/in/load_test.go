package in

import (
	"testing"

	"github.com/scidatahub/vault/internal/rpc/wire"

	"github.com/stretchr/testify/assert"
)

func TestFromCompletedParts(t *testing.T) {
	parts := []wire.CompletedPartMessage{
		{ETag: "etag-1", PartNo: 1},
		{ETag: "etag-2", PartNo: 2},
	}

	out := fromCompletedParts(parts)

	assert.Len(t, out, 2)
	assert.Equal(t, "etag-1", out[0].ETag)
	assert.EqualValues(t, 2, out[1].PartNo)
}

func TestFromCompletedPartsEmpty(t *testing.T) {
	out := fromCompletedParts(nil)
	assert.Empty(t, out)
}
