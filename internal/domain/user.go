package domain

import (
	"context"
	"time"
)

// User represents a registered user.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
}

// UserRepository defines storage operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, ids []int64, from, size int) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService is the admin-facing user CRUD.
type UserService interface {
	Create(ctx context.Context, name, email, password string) (*User, error)
	List(ctx context.Context, ids []int64, from, size int) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher hashes and verifies passwords. Implementations may use
// bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a bearer token and returns the user id it carries.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthService handles signup and login.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (*User, error)
	// Login returns a signed token for valid credentials.
	Login(ctx context.Context, email, password string) (string, error)
}
