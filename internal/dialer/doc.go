package dialer

// Package dialer provides outbound dialing for the SOCKS5 server.
//
// Dialers implement a small interface (DialContext) and are used by the
// server to open the destination connection for a CONNECT request.
