package socks5

import "errors"

// Connection-scoped protocol errors. Every one of these terminates only the
// connection that produced it; none are fatal to the server. Except for
// destination-connect failures (which get a connection-refused reply before
// the drop), a connection failing with one of these is closed without
// sending any further bytes.
var (
	ErrInvalidVersion        = errors.New("invalid socks version")
	ErrUnsupportedAuthMethod = errors.New("no acceptable authentication method")
	ErrUnsupportedCommand    = errors.New("unsupported command")
	ErrInvalidAddressType    = errors.New("invalid address type")
	ErrConnectionFailed      = errors.New("connection failed")
)
