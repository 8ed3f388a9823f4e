package socks5

// Package socks5 implements the server side of the SOCKS5 CONNECT protocol
// (RFC 1928 subset: no-auth negotiation and the CONNECT command only).
//
// It contains the handshake and request parser, the reply encoder, and the
// bidirectional relay engine that runs once a tunnel is established. BIND and
// UDP ASSOCIATE are not implemented, and the only authentication method the
// server accepts is "no authentication required".
