package auth

import "errors"

var (
	ErrBadConfig = errors.New("bad config")
	ErrRejected  = errors.New("rejected")
)
