package socks5

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"slices"
	"strconv"
)

// Target is the resolved destination of a CONNECT request.
type Target struct {
	IP   net.IP
	Port uint16
}

func (t Target) String() string {
	return net.JoinHostPort(t.IP.String(), strconv.Itoa(int(t.Port)))
}

// negotiate runs the method-selection handshake: version and method count,
// then the client's method list. Only "no authentication required" (0x00) is
// acceptable; when the client doesn't offer it the connection is dropped
// without a reply. On success exactly [0x05 0x00] is written back.
//
// All reads are exact-length: io.ReadFull keeps reading until the requested
// byte count is satisfied, and a peer close mid-field is a hard failure.
func negotiate(conn net.Conn) error {
	var greeting [2]byte
	if _, err := io.ReadFull(conn, greeting[:]); err != nil {
		return fmt.Errorf("%w: read greeting: %v", ErrConnectionFailed, err)
	}
	if greeting[0] != Version {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidVersion, greeting[0])
	}

	methods := make([]byte, int(greeting[1]))
	if _, err := io.ReadFull(conn, methods); err != nil {
		return fmt.Errorf("%w: read methods: %v", ErrConnectionFailed, err)
	}
	if !slices.Contains(methods, byte(MethodNoAuth)) {
		return ErrUnsupportedAuthMethod
	}

	if _, err := conn.Write([]byte{Version, MethodNoAuth}); err != nil {
		return fmt.Errorf("%w: write method selection: %v", ErrConnectionFailed, err)
	}
	return nil
}

// readRequest parses the CONNECT request that follows a successful
// handshake: the 4-byte header, the address (dispatched on ATYP), and the
// big-endian port. Domain names are resolved to one IP here, so the caller
// always receives a dialable target. Unsupported commands and address types
// reject the request without any wire reply.
func (s *Server) readRequest(ctx context.Context, conn net.Conn) (Target, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(conn, hdr[:]); err != nil {
		return Target{}, fmt.Errorf("%w: read request header: %v", ErrConnectionFailed, err)
	}
	if hdr[0] != Version {
		return Target{}, fmt.Errorf("%w: 0x%02x", ErrInvalidVersion, hdr[0])
	}
	if hdr[1] != CmdConnect {
		return Target{}, fmt.Errorf("%w: 0x%02x", ErrUnsupportedCommand, hdr[1])
	}

	var ip net.IP
	switch hdr[3] {
	case ATYPIPv4:
		var b [4]byte
		if _, err := io.ReadFull(conn, b[:]); err != nil {
			return Target{}, fmt.Errorf("%w: read ipv4 address: %v", ErrConnectionFailed, err)
		}
		ip = net.IP(b[:])
	case ATYPIPv6:
		var b [16]byte
		if _, err := io.ReadFull(conn, b[:]); err != nil {
			return Target{}, fmt.Errorf("%w: read ipv6 address: %v", ErrConnectionFailed, err)
		}
		ip = net.IP(b[:])
	case ATYPDomain:
		var length [1]byte
		if _, err := io.ReadFull(conn, length[:]); err != nil {
			return Target{}, fmt.Errorf("%w: read domain length: %v", ErrConnectionFailed, err)
		}
		name := make([]byte, int(length[0]))
		if _, err := io.ReadFull(conn, name); err != nil {
			return Target{}, fmt.Errorf("%w: read domain: %v", ErrConnectionFailed, err)
		}

		resolved, err := s.cfg.Resolver.Resolve(ctx, string(name))
		if err != nil {
			return Target{}, fmt.Errorf("%w: resolve %q: %v", ErrConnectionFailed, name, err)
		}
		ip = resolved
	default:
		return Target{}, fmt.Errorf("%w: 0x%02x", ErrInvalidAddressType, hdr[3])
	}

	var port [2]byte
	if _, err := io.ReadFull(conn, port[:]); err != nil {
		return Target{}, fmt.Errorf("%w: read port: %v", ErrConnectionFailed, err)
	}

	return Target{IP: ip, Port: binary.BigEndian.Uint16(port[:])}, nil
}
