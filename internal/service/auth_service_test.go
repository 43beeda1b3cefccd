package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository/memrepo"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

func newAuthFixture() (*AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	return NewAuthService(memrepo.NewUsers(), tokens, auth.NewPasswordHasher(bcrypt.MinCost)), tokens
}

func TestAuthService_RegisterLoginMe(t *testing.T) {
	svc, tokens := newAuthFixture()
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "pw", IsSeller: true})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.User.PasswordHash == "pw" {
		t.Error("password must be hashed")
	}
	if session.User.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", session.User.Email)
	}

	identity, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.UserID != session.User.ID || identity.Role != domain.RoleSeller {
		t.Errorf("unexpected identity %+v", identity)
	}

	login, err := svc.Login(ctx, "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != session.User.ID {
		t.Errorf("login returned another user")
	}

	me, err := svc.Me(ctx, auth.Requester{UserID: session.User.ID})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Username != "alice" {
		t.Errorf("unexpected user %+v", me)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, "bob", "pw")
	expectStatus(t, err, http.StatusNotFound)

	_, err = svc.Login(ctx, "alice", "nope")
	expectStatus(t, err, http.StatusBadRequest)
	if msg := apperrors.ToDomainError(err).Message; msg != wrongCredentialsMessage {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestAuthService_RegisterUniqueMessages(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()
	phone := "+100"
	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw", Phone: &phone}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name  string
		input RegisterInput
		want  string
	}{
		{name: "username", input: RegisterInput{Username: "alice", Email: "b@x.io", Password: "pw"}, want: "Username already exists!"},
		{name: "email", input: RegisterInput{Username: "bob", Email: "a@x.io", Password: "pw"}, want: "Email already exists!"},
		{name: "phone", input: RegisterInput{Username: "bob", Email: "b@x.io", Password: "pw", Phone: &phone}, want: "Phone number already exists!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			expectStatus(t, err, http.StatusBadRequest)
			if msg := apperrors.ToDomainError(err).Message; msg != tt.want {
				t.Errorf("expected %q, got %q", tt.want, msg)
			}
		})
	}
}
