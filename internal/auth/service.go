package auth

import (
	"errors"
	"fmt"

	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/services"
)

var (
	ErrBadCredentials   = errors.New("invalid username or password")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTaken    = services.ErrUsernameTaken
)

// UserDirectory is the account source the auth service works against.
type UserDirectory interface {
	Save(user services.User) (services.User, error)
	ExistsByUsername(username string) (bool, error)
	LoadUserByUsername(username string) (services.Principal, error)
	LoadUserByID(id uint) (services.Principal, error)
}

// Service registers accounts and verifies credentials.
type Service struct {
	users UserDirectory

	// dummyHash is compared against when the username is unknown so that
	// both failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewService creates a new authentication service.
func NewService(users UserDirectory, hasher *BcryptHasher) *Service {
	dummy, _ := hasher.HashPassword("not-a-real-password")
	return &Service{users: users, dummyHash: dummy}
}

// Register creates an account. An empty role becomes entities.DefaultRole.
// Returns ErrUsernameTaken when the username is registered, whether that is
// noticed by the pre-check or by the store's unique constraint.
func (s *Service) Register(username, password string, role entities.Role) (services.User, error) {
	if username == "" {
		return services.User{}, ErrUsernameRequired
	}
	if password == "" {
		return services.User{}, ErrPasswordRequired
	}
	if len(password) > MaxPasswordLength {
		return services.User{}, ErrPasswordTooLong
	}

	exists, err := s.users.ExistsByUsername(username)
	if err != nil {
		return services.User{}, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return services.User{}, ErrUsernameTaken
	}

	user, err := s.users.Save(services.User{Username: username, Password: password, Role: role})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return services.User{}, ErrUsernameTaken
		}
		return services.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials and returns the principal.
// Unknown usernames and wrong passwords both yield ErrBadCredentials.
func (s *Service) Authenticate(username, password string) (services.Principal, error) {
	principal, err := s.users.LoadUserByUsername(username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			_ = CheckPassword(password, s.dummyHash)
			return services.Principal{}, ErrBadCredentials
		}
		return services.Principal{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := CheckPassword(password, principal.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return services.Principal{}, ErrBadCredentials
		}
		return services.Principal{}, fmt.Errorf("failed to verify password: %w", err)
	}
	return principal, nil
}

// PrincipalByID resolves the principal behind a session.
func (s *Service) PrincipalByID(id uint) (services.Principal, error) {
	return s.users.LoadUserByID(id)
}
