package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRecordImmutable    = errors.New("record immutable")
	ErrRequestAlreadyOpen = errors.New("validation request already open")
	ErrRequestClosed      = errors.New("validation request closed")
	ErrWindowElapsed      = errors.New("validation window elapsed")
	ErrOrgNotVerified     = errors.New("organization not verified")
	ErrPaymentDeclined    = errors.New("payment declined")
)
