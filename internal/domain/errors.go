package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateIdentity  = errors.New("username already exists")
	ErrDuplicateTicker    = errors.New("ticker already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenInvalid       = errors.New("could not validate credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrQueryExecution     = errors.New("query execution failed")
	ErrInvalidInput       = errors.New("invalid input")
)
