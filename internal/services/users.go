package services

import (
	"fmt"

	"github.com/mrlokans/bookcatalog/internal/database/users"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

var (
	ErrUserNotFound  = users.ErrUserNotFound
	ErrUsernameTaken = users.ErrUsernameTaken
)

// User is the API-facing user record. Password holds plaintext on the way
// in and is never serialized on the way out.
type User struct {
	ID       uint          `json:"id,omitempty"`
	Username string        `json:"username"`
	Password string        `json:"password,omitempty"`
	Role     entities.Role `json:"role,omitempty"`
}

// Principal is the authenticated identity handed to the authentication
// mechanism: the stored hash plus the authorities derived from the role.
type Principal struct {
	UserID       uint
	Username     string
	PasswordHash string
	Authorities  []entities.Role
}

// HasAuthority reports whether the principal holds any of the roles.
func (p Principal) HasAuthority(roles ...entities.Role) bool {
	for _, held := range p.Authorities {
		for _, want := range roles {
			if held == want {
				return true
			}
		}
	}
	return false
}

// UserService manages accounts and supplies principals for authentication.
type UserService struct {
	store  UserStore
	hasher PasswordHasher
}

func NewUserService(store UserStore, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// Save hashes the plaintext password and persists the user. An empty role
// becomes entities.DefaultRole. The returned record carries the generated
// ID and no password.
func (s *UserService) Save(user User) (User, error) {
	hash, err := s.hasher.HashPassword(user.Password)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.Role
	if role == "" {
		role = entities.DefaultRole
	}

	entity := &entities.User{
		Username: user.Username,
		Password: hash,
		Role:     role,
	}
	if err := s.store.Save(entity); err != nil {
		return User{}, err
	}

	return User{
		ID:       entity.ID,
		Username: entity.Username,
		Role:     entity.Role,
	}, nil
}

func (s *UserService) ExistsByUsername(username string) (bool, error) {
	return s.store.ExistsByUsername(username)
}

// LoadUserByUsername returns the principal for username, or ErrUserNotFound.
func (s *UserService) LoadUserByUsername(username string) (Principal, error) {
	user, err := s.store.FindByUsername(username)
	if err != nil {
		return Principal{}, err
	}
	return toPrincipal(user), nil
}

// LoadUserByID returns the principal for a user ID, or ErrUserNotFound.
func (s *UserService) LoadUserByID(id uint) (Principal, error) {
	user, err := s.store.FindByID(id)
	if err != nil {
		return Principal{}, err
	}
	return toPrincipal(user), nil
}

func toPrincipal(user *entities.User) Principal {
	return Principal{
		UserID:       user.ID,
		Username:     user.Username,
		PasswordHash: user.Password,
		Authorities:  []entities.Role{user.Role},
	}
}
