package service

import (
	"context"
	"errors"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

const forbiddenMessage = "You are not allowed to modify this resource"

// loadOwned fetches a directly owned resource and checks the requester against its owner.
// A missing record is reported before ownership is evaluated.
func loadOwned[T auth.Owned](ctx context.Context, resource, id, requesterID string, load func(context.Context, string) (T, error)) (T, error) {
	record, err := load(ctx, id)
	if err != nil {
		var zero T
		return zero, notFound(resource, err)
	}
	if err := auth.AuthorizeMutation(requesterID, record); err != nil {
		var zero T
		return zero, forbidden(err)
	}
	return record, nil
}

func notFound(resource string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

func forbidden(err error) error {
	if errors.Is(err, auth.ErrForbidden) {
		return apperrors.NewForbidden(forbiddenMessage)
	}
	return err
}
