package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

type sampleMessage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestCodecName(t *testing.T) {
	assert.Equal(t, "json", Codec{}.Name())
}

func TestCodecMarshalUnmarshalRoundTrip(t *testing.T) {
	c := Codec{}

	in := sampleMessage{ID: "obj-1", Name: "payload.bin"}

	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out sampleMessage
	require.NoError(t, c.Unmarshal(data, &out))

	assert.Equal(t, in, out)
}

func TestCodecIsRegistered(t *testing.T) {
	assert.NotNil(t, encoding.GetCodec(Name))
}
