// Package domain holds the error taxonomy shared across the ledger.
package domain

import "errors"

// Common domain errors. All domain failures are synchronous and returned to
// the caller before any state changes.
var (
	// ErrInvalidAmount is returned when an operation receives a zero or
	// negative amount, or a conversion receives a negative one.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a withdrawal would take a debit
	// or savings balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCreditLimitExceeded is returned when a credit withdrawal would take
	// the balance below the credit limit.
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")

	// ErrMissingAccount is returned when an account lookup fails.
	ErrMissingAccount = errors.New("account not found")

	// ErrMissingCustomer is returned when a customer lookup fails.
	ErrMissingCustomer = errors.New("customer not found")
)
