package service

import (
	"testing"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

func expectStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	if got := apperrors.ToDomainError(err).HTTPStatus; got != want {
		t.Fatalf("expected status %d, got %d (%v)", want, got, err)
	}
}
