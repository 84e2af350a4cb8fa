package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenLengthAndAlphabet(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, token, apiTokenLength)

	for _, r := range token {
		assert.True(t, strings.ContainsRune(apiTokenAlphabet, r), "unexpected rune %q in generated token", r)
	}
}

func TestGenerateTokenIsNotConstant(t *testing.T) {
	first, err := GenerateToken()
	require.NoError(t, err)

	second, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAPITokenParentFieldName(t *testing.T) {
	field, hasParent := APITokenParentFieldName()

	assert.Equal(t, "project_id", field)
	assert.True(t, hasParent)
}
