// Package user models login credentials for the bank's interfaces.
package user

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Roles a credential can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AdminCustomerID marks credentials with no customer profile.
const AdminCustomerID = "N/A"

const (
	bcryptCost     = 14
	minPasswordLen = 4
)

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when a password check fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidUser is returned when construction invariants are violated.
	ErrInvalidUser = errors.New("invalid user")
)

// User holds one login credential. The password is stored only as a
// bcrypt hash.
type User struct {
	Username     string
	PasswordHash string
	CustomerID   string
	Role         string
}

// New creates a customer-linked login with a hashed password.
func New(username, password, customerID string) (*User, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidUser)
	}
	return build(username, password, customerID, RoleUser)
}

// NewAdmin creates an administrative login not linked to any customer.
func NewAdmin(username, password string) (*User, error) {
	return build(username, password, AdminCustomerID, RoleAdmin)
}

func build(username, password, customerID, role string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be blank", ErrInvalidUser)
	}
	password = strings.TrimSpace(password)
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidUser, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &User{
		Username:     username,
		PasswordHash: string(hash),
		CustomerID:   customerID,
		Role:         role,
	}, nil
}

// NewFromData restores a stored credential without re-hashing.
func NewFromData(username, passwordHash, customerID, role string) *User {
	return &User{
		Username:     strings.TrimSpace(username),
		PasswordHash: strings.TrimSpace(passwordHash),
		CustomerID:   strings.TrimSpace(customerID),
		Role:         strings.TrimSpace(role),
	}
}

// CheckPassword compares a plain password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the credential carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
