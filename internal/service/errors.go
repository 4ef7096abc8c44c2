package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/auth"
	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/middleware"
	"github.com/mmynk/groupsplit/internal/storage"
)

var (
	errNotMember        = errors.New("not a member of this group")
	errNotCreator       = errors.New("only the group creator can do this")
	errMemberHasBalance = errors.New("member still has an outstanding balance")
)

// toConnectError maps domain errors to Connect codes. Errors that are already
// *connect.Error pass through unchanged.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, calculator.ErrInvalidExpense),
		errors.Is(err, calculator.ErrInvalidBalanceMap),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidUsername):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrUsernameTaken):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, errNotMember), errors.Is(err, errNotCreator):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, errMemberHasBalance):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// caller returns the authenticated username set by the auth interceptor.
func caller(ctx context.Context) (string, error) {
	username := middleware.GetUsername(ctx)
	if username == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return username, nil
}
