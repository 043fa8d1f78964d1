package service

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrRequestNotFound = errors.New("request not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidState    = errors.New("action not allowed for current request status")
	ErrNoCopies        = errors.New("no copies of this book are available")
)
