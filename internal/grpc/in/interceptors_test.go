package in

import (
	"context"
	"testing"

	"github.com/scidatahub/vault/common/mlog"
	"github.com/scidatahub/vault/internal/adapters/identity"
	"github.com/scidatahub/vault/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestIdentityFromContextMissing(t *testing.T) {
	_, err := identityFromContext(context.Background())
	assert.Error(t, err)
}

func TestIdentityFromContextPresent(t *testing.T) {
	want := identity.Identity{UserID: "alice"}
	ctx := context.WithValue(context.Background(), identityContextKey{}, want)

	got, err := identityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFirstValue(t *testing.T) {
	md := metadata.New(map[string]string{"accesstoken": "bearer-1"})

	assert.Equal(t, "bearer-1", firstValue(md, identity.MetadataAccessToken))
	assert.Empty(t, firstValue(md, identity.MetadataAPIToken))
	assert.Empty(t, firstValue(metadata.MD{}, identity.MetadataAccessToken))
}

func TestWithAuthenticationAttachesIdentity(t *testing.T) {
	auth := identity.NewAuthenticator(identity.AuthModeDebug, "", nil)
	interceptor := withAuthentication(auth)

	md := metadata.New(nil)
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var attached identity.Identity

	handler := func(ctx context.Context, _ any) (any, error) {
		attached, _ = identityFromContext(ctx)
		return "ok", nil
	}

	resp, err := interceptor(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/vault.Project/GetProject"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "testuser", attached.UserID)
}

func TestWithLoggingInvokesHandlerAndPropagatesResult(t *testing.T) {
	interceptor := withLogging(&mlog.NoneLogger{})

	handler := func(ctx context.Context, req any) (any, error) {
		return req, nil
	}

	resp, err := interceptor(context.Background(), "payload", &grpc.UnaryServerInfo{FullMethod: "/vault.Project/GetProject"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "payload", resp)
}

func TestWithTracingInvokesHandlerAndRecordsErrors(t *testing.T) {
	interceptor := withTracing(otel.Tracer("vault-test"))

	handler := func(ctx context.Context, req any) (any, error) {
		return nil, assert.AnError
	}

	_, err := interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/vault.Project/GetProject"}, handler)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWithTracingPropagatesResultOnSuccess(t *testing.T) {
	interceptor := withTracing(otel.Tracer("vault-test"))

	handler := func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	}

	resp, err := interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/vault.Project/GetProject"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestWithAuthenticationRejectsUnauthenticated(t *testing.T) {
	lookup := func(_ context.Context, _ string) (string, string, shared.Rights, error) {
		return "", "", nil, assert.AnError
	}

	auth := identity.NewAuthenticator(identity.AuthModeOAuth2, "", lookup)
	interceptor := withAuthentication(auth)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(nil))

	called := false
	handler := func(ctx context.Context, _ any) (any, error) {
		called = true
		return nil, nil
	}

	_, err := interceptor(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/vault.Project/GetProject"}, handler)
	assert.Error(t, err)
	assert.False(t, called)
}
