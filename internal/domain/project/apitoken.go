package project

import (
	"crypto/rand"
	"math/big"

	"github.com/scidatahub/vault/internal/domain/shared"
)

// apiTokenAlphabet is the exact character set spec.md §3 requires for
// generated APIToken values. No example in the corpus implements
// bespoke-alphabet secure random string generation, so this is built
// directly on crypto/rand + math/big.
const apiTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789)(*&^%$#@!~"

const apiTokenLength = 30

// APIToken is a server-issued credential scoped to a single project.
type APIToken struct {
	ID        string        `bson:"id"`
	UserID    string        `bson:"user_id"`
	ProjectID string        `bson:"project_id"`
	Token     string        `bson:"token"`
	Rights    shared.Rights `bson:"rights"`
}

// CollectionName is the Mongo collection APITokens are persisted in.
const APITokenCollectionName = "APIToken"

// ParentFieldName reports the parent field used to look up APITokens by project.
func APITokenParentFieldName() (string, bool) { return "project_id", true }

// GenerateToken produces a new random token value over apiTokenAlphabet.
func GenerateToken() (string, error) {
	buf := make([]byte, apiTokenLength)

	alphabetLen := big.NewInt(int64(len(apiTokenAlphabet)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}

		buf[i] = apiTokenAlphabet[n.Int64()]
	}

	return string(buf), nil
}
