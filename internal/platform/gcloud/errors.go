package gcloud

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcCode extracts the status code from anywhere in the error chain.
// status.Code alone does not unwrap, and our lookup errors are wrapped.
func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Code()
	}
	return codes.Unknown
}

// IsNotFound checks if an error indicates a resource was not found.
// Not-found drives reconciliation state transitions and is never surfaced
// as a failure by the lookup methods.
func IsNotFound(err error) bool {
	return grpcCode(err) == codes.NotFound
}

// IsAlreadyExists checks if an error indicates a resource already exists.
// Seen when a create races an incomplete deletion.
func IsAlreadyExists(err error) bool {
	return grpcCode(err) == codes.AlreadyExists
}
