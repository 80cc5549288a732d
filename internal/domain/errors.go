package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountExists    = errors.New("account already exists for this currency")
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)
