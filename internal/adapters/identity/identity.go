// Package identity implements the dual-mode authentication and
// project-scoped authorization pipeline that guards every RPC.
package identity

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/scidatahub/vault/common"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Metadata key names carried on every inbound RPC, per spec.md §6.
const (
	MetadataAccessToken = "AccessToken"
	MetadataAPIToken    = "API_TOKEN"
)

// AuthMode selects which authentication variant is active at startup.
type AuthMode string

// The two configurable authentication modes; TestMode is implied when
// AuthMode is empty in non-production builds.
const (
	AuthModeOAuth2 AuthMode = "oauth2"
	AuthModeDebug  AuthMode = "debug"
)

// Identity is the authenticated caller: a user id plus, for API-token
// auth, the project the token is scoped to.
type Identity struct {
	UserID           string
	APITokenProject  string
	APITokenRights   shared.Rights
	ViaAPIToken      bool
}

// APITokenLookup resolves an opaque token string to its owning user,
// project, and granted rights.
type APITokenLookup func(ctx context.Context, token string) (userID, projectID string, rights shared.Rights, err error)

// Authenticator extracts caller identity from request metadata.
type Authenticator struct {
	mode            AuthMode
	userInfoEndpoint string
	httpClient      *http.Client
	lookupAPIToken  APITokenLookup
}

// NewAuthenticator constructs an Authenticator for mode, using
// userInfoEndpoint for OAuth2 bearer resolution and lookupAPIToken for
// API-token resolution.
func NewAuthenticator(mode AuthMode, userInfoEndpoint string, lookupAPIToken APITokenLookup) *Authenticator {
	return &Authenticator{
		mode:             mode,
		userInfoEndpoint: userInfoEndpoint,
		httpClient:       http.DefaultClient,
		lookupAPIToken:   lookupAPIToken,
	}
}

// Authenticate extracts caller identity from the metadata entries present
// on the inbound call. If both AccessToken and API_TOKEN are present, the
// API-token mode wins. If neither is present, the call is unauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, accessToken, apiToken string) (Identity, error) {
	if a.mode == AuthModeDebug {
		return Identity{UserID: "testuser", APITokenRights: shared.Rights{shared.RightRead, shared.RightWrite}}, nil
	}

	if apiToken != "" {
		userID, projectID, rights, err := a.lookupAPIToken(ctx, apiToken)
		if err != nil {
			if common.IsNotFound(err) {
				return Identity{}, common.UnauthorizedError{Message: "api token is not recognized", Err: err}
			}

			return Identity{}, errors.Wrap(err, "api token lookup failed")
		}

		return Identity{UserID: userID, APITokenProject: projectID, APITokenRights: rights, ViaAPIToken: true}, nil
	}

	if accessToken != "" {
		return a.authenticateBearer(ctx, accessToken)
	}

	return Identity{}, common.UnauthorizedError{Message: "request carries neither AccessToken nor API_TOKEN metadata"}
}

// authenticateBearer HTTP-GETs the configured userinfo endpoint with the
// caller's bearer token and extracts the sub claim. Built on
// golang.org/x/oauth2's StaticTokenSource + NewClient, the same bearer-HTTP
// idiom jrepp-hermes depends on for its own OIDC flows.
func (a *Authenticator) authenticateBearer(ctx context.Context, bearerToken string) (Identity, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearerToken})
	client := oauth2.NewClient(ctx, src)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userInfoEndpoint, nil)
	if err != nil {
		return Identity{}, errors.Wrap(err, "failed to build userinfo request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return Identity{}, errors.Wrap(err, "userinfo request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, errors.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Sub string `json:"sub"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Identity{}, errors.Wrap(err, "failed to decode userinfo response")
	}

	if body.Sub == "" {
		return Identity{}, errors.New("userinfo response missing sub claim")
	}

	return Identity{UserID: body.Sub}, nil
}
