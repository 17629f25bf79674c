package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNotInCart       = errors.New("item not in cart")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnauthenticated = errors.New("login required")
	ErrSlugTaken       = errors.New("vendor slug already taken")
	ErrDuplicate       = errors.New("duplicate entry")
	ErrInvalidInput    = errors.New("invalid input")
)
