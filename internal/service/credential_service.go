package service

import (
	"context"
	"errors"
	"time"

	"github.com/amehta/pressroom/internal/domain"
	"github.com/amehta/pressroom/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CredentialService owns the user record: it hashes passwords at
// registration and verifies them at login.
type CredentialService struct {
	userRepo repository.UserRepository
}

func NewCredentialService(userRepo repository.UserRepository) *CredentialService {
	return &CredentialService{userRepo: userRepo}
}

type RegisterInput struct {
	Username string
	Password string
	Role     domain.Role
}

func (s *CredentialService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if input.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	role := input.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be admin or editor")
	}

	// Case-sensitive exact match; the unique index backs this up for
	// concurrent registrations.
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	// bcrypt generates a fresh per-user salt on every call.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Verify returns the user when the password matches. Unknown usernames and
// wrong passwords fail with the same error so callers cannot tell them
// apart; the hash comparison itself is bcrypt's constant-time one.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *CredentialService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
