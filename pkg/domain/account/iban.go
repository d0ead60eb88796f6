package account

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// bankCode is the bank's fixed 4-letter code embedded in every synthesized
// IBAN.
const bankCode = "SMTB"

// Iban identifies an account for external transfers. Synthesized IBANs are
// pseudo-realistic: the check digits are random, not computed, and
// uniqueness is best-effort via the embedded account ID.
type Iban string

// NewIban synthesizes an IBAN of the form
//
//	<country><check digits><bank code><branch><account id><suffix>
//
// e.g. "RO42SMTB1234A00173". The country must be a two-letter code.
func NewIban(country, accountID string) (Iban, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 || !isLetters(country) {
		return "", fmt.Errorf("country must be a two-letter code, got %q", country)
	}
	if accountID == "" {
		return "", fmt.Errorf("account id is required")
	}

	check := 10 + rand.IntN(90)
	branch := 1000 + rand.IntN(9000)
	suffix := 10 + rand.IntN(90)

	return Iban(fmt.Sprintf("%s%d%s%d%s%d", country, check, bankCode, branch, accountID, suffix)), nil
}

// String returns the IBAN as a plain string.
func (i Iban) String() string { return string(i) }

// BankKey returns the bank and branch portion (characters 4 through 11).
func (i Iban) BankKey() string {
	if len(i) < 12 {
		return ""
	}
	return string(i[4:12])
}

// Number returns the account-number portion following the bank key.
func (i Iban) Number() string {
	if len(i) < 12 {
		return ""
	}
	return string(i[12:])
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
