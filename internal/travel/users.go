package travel

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// HashPassword returns a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateUser registers a user. The email must not already have an
// account; the check runs here so both backends behave the same, and the
// SQL engine's unique column backs it up.
func CreateUser(s types.Store, id, email, name, passwordHash string) error {
	existing, err := s.QueryOne("SELECT * FROM users WHERE email = ?", []any{email})
	if err != nil {
		return fmt.Errorf("checking email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	err = s.ExecuteWrite(
		"INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, datetime('now'))",
		[]any{id, email, name, passwordHash})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByEmail looks a user up by email. Returns ErrNotFound when no
// account exists.
func GetUserByEmail(s types.Store, email string) (*types.User, error) {
	row, err := s.QueryOne("SELECT * FROM users WHERE email = ?", []any{email})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, types.ErrNotFound
	}
	return userFromRecord(row), nil
}

// GetUserByID looks a user up by id. Returns ErrNotFound when absent.
func GetUserByID(s types.Store, id string) (*types.User, error) {
	row, err := s.QueryOne("SELECT * FROM users WHERE id = ?", []any{id})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, types.ErrNotFound
	}
	return userFromRecord(row), nil
}

// Authenticate resolves the email and checks the password. Both unknown
// email and a bad password come back as ErrNotFound so callers cannot
// tell which one failed.
func Authenticate(s types.Store, email, password string) (*types.User, error) {
	user, err := GetUserByEmail(s, email)
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, types.ErrNotFound
	}
	return user, nil
}

func userFromRecord(r types.Record) *types.User {
	return &types.User{
		ID:           types.StringField(r, "id"),
		Email:        types.StringField(r, "email"),
		Name:         types.StringField(r, "name"),
		PasswordHash: types.StringField(r, "password_hash"),
		CreatedAt:    types.StringField(r, "created_at"),
	}
}
