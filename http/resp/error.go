package resp

import "errors"

var (
	ErrInvalid = errors.New("invalid")
	ErrWrite   = errors.New("could not write response")
)
