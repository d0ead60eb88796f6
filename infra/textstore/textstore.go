// Package textstore persists the bank's state as pipe-delimited text files,
// one per entity type, under a single data directory.
//
// Each file starts with a "#" header naming the columns and holds one record
// per line. Loading is forgiving: blank and commented lines are skipped,
// malformed records are dropped with a warning, and a missing file means an
// empty collection. Saving overwrites whole files.
package textstore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/amirasaad/banking/pkg/repository"
)

const (
	customersFile    = "customers.txt"
	accountsFile     = "accounts.txt"
	transactionsFile = "transactions.txt"
	usersFile        = "users.txt"

	// placeholder marks fields that do not apply to an account kind.
	placeholder = "-"
)

var _ repository.Store = (*Store)(nil)

// Store reads and writes the bank's text files under one directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates the data directory if needed and returns a store over it.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger.With("component", "textstore")}, nil
}

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// readRecords returns the data lines of the named file split on "|",
// keeping only lines with the expected field count. A missing file yields
// no records and no error.
func (s *Store) readRecords(name string, fields int) ([][]string, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no data file yet, starting fresh", "file", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close() //nolint:errcheck

	var records [][]string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != fields {
			s.logger.Warn("skipping malformed record",
				"file", name, "fields", len(parts), "want", fields)
			continue
		}
		records = append(records, parts)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return records, nil
}

// writeRecords overwrites the named file with a header line and one
// pipe-joined row per record.
func (s *Store) writeRecords(name, header string, rows [][]string, perm os.FileMode) error {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(header)
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(strings.Join(row, "|"))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path(name), []byte(b.String()), perm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
