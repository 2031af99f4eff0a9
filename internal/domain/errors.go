package domain

import "errors"

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrMerchantExists   = errors.New("merchant already exists")
	ErrDuplicateOptIn   = errors.New("duplicate opt-in for cart and month")
	ErrInvalidInput     = errors.New("invalid input")
)
