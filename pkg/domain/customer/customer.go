// Package customer models the bank's customer identity records.
package customer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCustomer is returned when a profile fails validation.
var ErrInvalidCustomer = errors.New("invalid customer")

var validate = validator.New()

// Profile carries the personal fields collected at registration. The
// national ID is a 13-digit personal numeric code.
type Profile struct {
	FirstName    string `validate:"required"`
	LastName     string `validate:"required"`
	Age          int    `validate:"gte=18,lte=120"`
	Gender       string `validate:"required"`
	Email        string `validate:"required,email"`
	Phone        string `validate:"required,numeric,min=7,max=15"`
	NationalID   string `validate:"required,len=13,numeric"`
	AddressLine1 string `validate:"required"`
	AddressLine2 string
	City         string `validate:"required"`
	PostalCode   string `validate:"required"`
	Country      string `validate:"required,iso3166_1_alpha2"`
}

// Customer is an immutable identity record. Customers are never deleted;
// their accounts reference them by ID.
type Customer struct {
	ID string
	Profile
}

// New validates the profile and returns the customer record. The country
// code is normalized to upper case before validation.
func New(id string, p Profile) (*Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidCustomer)
	}
	p.Country = strings.ToUpper(strings.TrimSpace(p.Country))
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCustomer, err)
	}
	return &Customer{ID: id, Profile: p}, nil
}

// FullName returns the display name used on accounts and transfers.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
