package entity

import "errors"

var (
	ErrInvalidAction   = errors.New("invalid action")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrElementNotFound = errors.New("element not visible before timeout")
)
