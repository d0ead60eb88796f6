package textstore

import (
	"context"
	"strconv"
	"strings"

	"github.com/amirasaad/banking/pkg/domain/customer"
)

const (
	customersHeader = "customerId|firstName|lastName|age|gender|email|phone|nationalId|addressLine1|addressLine2|city|postalCode|country"
	customerFields  = 13
)

// LoadCustomers reads customers.txt. Records that fail validation are
// dropped; an unparseable age falls back to the minimum of 18 so a damaged
// field does not lose the whole customer.
func (s *Store) LoadCustomers(ctx context.Context) ([]*customer.Customer, error) {
	records, err := s.readRecords(customersFile, customerFields)
	if err != nil {
		return nil, err
	}

	var customers []*customer.Customer
	for _, rec := range records {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		age, err := strconv.Atoi(rec[3])
		if err != nil {
			s.logger.Warn("invalid age, defaulting to 18", "customer", rec[0], "age", rec[3])
			age = 18
		}
		c, err := customer.New(rec[0], customer.Profile{
			FirstName:    rec[1],
			LastName:     rec[2],
			Age:          age,
			Gender:       rec[4],
			Email:        rec[5],
			Phone:        rec[6],
			NationalID:   rec[7],
			AddressLine1: rec[8],
			AddressLine2: rec[9],
			City:         rec[10],
			PostalCode:   rec[11],
			Country:      rec[12],
		})
		if err != nil {
			s.logger.Warn("skipping customer record", "customer", rec[0], "error", err)
			continue
		}
		customers = append(customers, c)
	}
	s.logger.Info("customers loaded", "count", len(customers))
	return customers, nil
}

// SaveCustomers overwrites customers.txt with the given roster.
func (s *Store) SaveCustomers(ctx context.Context, customers []*customer.Customer) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.ID,
			c.FirstName,
			c.LastName,
			strconv.Itoa(c.Age),
			c.Gender,
			c.Email,
			c.Phone,
			c.NationalID,
			c.AddressLine1,
			c.AddressLine2,
			c.City,
			c.PostalCode,
			c.Country,
		})
	}
	return s.writeRecords(customersFile, customersHeader, rows, 0o644)
}
