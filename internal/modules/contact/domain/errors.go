package domain

import "errors"

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrNotSubscribed     = errors.New("email not subscribed")
)
