package common

import "errors"

// Error taxonomy shared by the HTTP handlers and the streaming session.
// Handlers map these onto status codes / error frames; anything else is
// treated as an internal persistence failure.
var (
	ErrUnauthorized = errors.New("invalid or missing credentials")
	ErrBadAddress   = errors.New("message must target exactly one of receiver_id or chat_id")
	ErrNotFound     = errors.New("not found")
)
