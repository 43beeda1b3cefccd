package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util/errorutil"
)

const wrongCredentialsMessage = "Wrong password or username!"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	hasher   *auth.PasswordHasher
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokenMgr *auth.TokenManager, hasher *auth.PasswordHasher) *AuthService {
	return &AuthService{users: users, tokenMgr: tokenMgr, hasher: hasher}
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Phone       *string
	Country     string
	Description string
	IsSeller    bool
}

// Session is an authenticated user with its freshly issued token.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates an account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        input.Phone,
		PasswordHash: hash,
		Country:      input.Country,
		Description:  input.Description,
		IsSeller:     input.IsSeller,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, registrationError(err)
	}
	return s.session(user)
}

// Login authenticates by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, notFound("User", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.NewValidationError(wrongCredentialsMessage, nil)
		}
		return nil, err
	}
	return s.session(user)
}

// Me returns the requester's account.
func (s *AuthService) Me(ctx context.Context, requester auth.Requester) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, requester.UserID)
	if err != nil {
		return nil, notFound("User", err)
	}
	return user, nil
}

// TokenTTL is the lifetime applied to the session cookie.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenMgr.TTL()
}

func (s *AuthService) session(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.Issue(user.ID, user.Role())
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func registrationError(err error) error {
	switch {
	case repository.IsUniqueViolation(err, repository.ConstraintUsersUsername):
		return apperrors.NewUniqueViolation("username", "Username already exists!")
	case repository.IsUniqueViolation(err, repository.ConstraintUsersEmail):
		return apperrors.NewUniqueViolation("email", "Email already exists!")
	case repository.IsUniqueViolation(err, repository.ConstraintUsersPhone):
		return apperrors.NewUniqueViolation("phone", "Phone number already exists!")
	}
	return err
}
