// Package in is the gRPC facade: pure translation from wire messages to
// service-handler calls and back, per spec.md §4.5. No business logic
// lives here; each method performs exactly one authorization before any
// mutation.
package in

import (
	"errors"

	"github.com/scidatahub/vault/common"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps the typed error taxonomy of common/errors.go to the gRPC
// status codes of spec.md §7. Unrecognized errors are internal — handlers
// never leak adapter-specific detail to the client.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case common.IsNotFound(err):
		return status.Error(codes.NotFound, "entity not found")

	case common.IsConflict(err):
		return status.Error(codes.AlreadyExists, "entity already exists")

	default:
	}

	var validationErr common.ValidationError
	if errors.As(err, &validationErr) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	var unauthorizedErr common.UnauthorizedError
	if errors.As(err, &unauthorizedErr) {
		return status.Error(codes.Unauthenticated, err.Error())
	}

	var forbiddenErr common.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		return status.Error(codes.PermissionDenied, err.Error())
	}

	var unprocessableErr common.UnprocessableOperationError
	if errors.As(err, &unprocessableErr) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	var failedPreconditionErr common.FailedPreconditionError
	if errors.As(err, &failedPreconditionErr) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	return status.Error(codes.Internal, "the server encountered an unexpected error")
}
