package session

import "errors"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpired      = errors.New("session expired")
	ErrNotFound     = errors.New("session not found")
)
