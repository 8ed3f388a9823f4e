package socks5

import (
	"context"
	"log/slog"
	"net"

	"github.com/hollgren/socksd/internal/dialer"
	"github.com/hollgren/socksd/internal/resolver"
)

type Config struct {
	// Dialer opens destination connections for CONNECT requests.
	Dialer dialer.Dialer

	// Resolver turns domain-name targets into one IP address.
	Resolver resolver.Resolver
}

type Server struct {
	cfg Config
	log *slog.Logger
}

func NewServer(cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, log: log}
}

// Serve accepts connections on ln until Accept fails, handling each client
// in its own goroutine. Connections share nothing: every protocol or I/O
// error stays scoped to the connection that produced it.
func (s *Server) Serve(ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(c)
	}
}

// handleConn runs one client through the strictly sequential connection
// lifecycle: handshake, request parse, destination dial, reply, relay. Every
// failure lands here, gets logged at debug level, and drops the connection;
// nothing a single client does can take down the server.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	log := s.log.With("client", conn.RemoteAddr().String())
	ctx := context.Background()

	if err := negotiate(conn); err != nil {
		log.Debug("handshake failed", "error", err)
		return
	}

	target, err := s.readRequest(ctx, conn)
	if err != nil {
		log.Debug("request rejected", "error", err)
		return
	}

	dest, err := s.cfg.Dialer.DialContext(ctx, "tcp", target.String())
	if err != nil {
		log.Debug("connect failed", "target", target.String(), "error", err)
		// Best effort: a write failure here just abandons the connection.
		_ = writeReply(conn, RepConnectionRefused, nil)
		return
	}
	defer dest.Close()

	if err := writeReply(conn, RepSucceeded, dest.LocalAddr()); err != nil {
		log.Debug("reply write failed", "error", err)
		return
	}

	log.Debug("tunnel established", "target", target.String(), "bound", dest.LocalAddr().String())

	if err := Relay(conn, dest); err != nil {
		log.Debug("relay ended", "error", err)
	}
}
