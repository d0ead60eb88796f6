package customer_test

import (
	"testing"

	"github.com/amirasaad/banking/pkg/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() customer.Profile {
	return customer.Profile{
		FirstName:    "Maria",
		LastName:     "Ionescu",
		Age:          34,
		Gender:       "F",
		Email:        "maria.ionescu@example.com",
		Phone:        "0721000111",
		NationalID:   "2910203456789",
		AddressLine1: "Str. Lalelelor 5",
		City:         "Bucharest",
		PostalCode:   "010101",
		Country:      "RO",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid profile", func(t *testing.T) {
		t.Parallel()
		c, err := customer.New("C001", validProfile())
		require.NoError(t, err)
		assert.Equal(t, "C001", c.ID)
		assert.Equal(t, "Maria Ionescu", c.FullName())
	})

	t.Run("country is normalized", func(t *testing.T) {
		t.Parallel()
		p := validProfile()
		p.Country = " ro "
		c, err := customer.New("C001", p)
		require.NoError(t, err)
		assert.Equal(t, "RO", c.Country)
	})

	t.Run("address line 2 is optional", func(t *testing.T) {
		t.Parallel()
		p := validProfile()
		p.AddressLine2 = "Ap. 12"
		_, err := customer.New("C001", p)
		assert.NoError(t, err)
	})
}

func TestNewRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*customer.Profile)
	}{
		{"missing first name", func(p *customer.Profile) { p.FirstName = "" }},
		{"missing last name", func(p *customer.Profile) { p.LastName = "" }},
		{"under age", func(p *customer.Profile) { p.Age = 17 }},
		{"implausible age", func(p *customer.Profile) { p.Age = 121 }},
		{"bad email", func(p *customer.Profile) { p.Email = "not-an-email" }},
		{"phone with letters", func(p *customer.Profile) { p.Phone = "07abc00111" }},
		{"short national id", func(p *customer.Profile) { p.NationalID = "12345" }},
		{"national id with letters", func(p *customer.Profile) { p.NationalID = "29102034X6789" }},
		{"missing address", func(p *customer.Profile) { p.AddressLine1 = "" }},
		{"bad country", func(p *customer.Profile) { p.Country = "ROU" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validProfile()
			tt.mutate(&p)
			_, err := customer.New("C001", p)
			assert.ErrorIs(t, err, customer.ErrInvalidCustomer)
		})
	}

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		_, err := customer.New("", validProfile())
		assert.ErrorIs(t, err, customer.ErrInvalidCustomer)
	})
}
