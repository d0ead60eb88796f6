package textstore

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain/user"
)

const (
	usersHeader = "username|passwordHash|customerId|role"
	userFields  = 4
)

// LoadUsers reads users.txt.
func (s *Store) LoadUsers(ctx context.Context) ([]*user.User, error) {
	records, err := s.readRecords(usersFile, userFields)
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(records))
	for _, rec := range records {
		users = append(users, user.NewFromData(rec[0], rec[1], rec[2], rec[3]))
	}
	s.logger.Info("users loaded", "count", len(users))
	return users, nil
}

// SaveUsers overwrites users.txt. The file carries password hashes, so it
// is written owner-only.
func (s *Store) SaveUsers(ctx context.Context, users []*user.User) error {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Username, u.PasswordHash, u.CustomerID, u.Role})
	}
	return s.writeRecords(usersFile, usersHeader, rows, 0o600)
}
