package router

import "errors"

var (
	ErrHandlerFault = errors.New("handler fault")
	ErrMalformed    = errors.New("malformed request")
	ErrNotFound     = errors.New("route not found")
	ErrSealed       = errors.New("router already serving")
	ErrTooLarge     = errors.New("request body too large")
)
