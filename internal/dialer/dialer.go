package dialer

import (
	"context"
	"net"
	"time"
)

// Dialer mirrors the net.Dialer interface.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type Config struct {
	// DialTimeout bounds each outbound TCP connect.
	DialTimeout time.Duration

	// KeepAlive is applied to every outbound TCP connection.
	KeepAlive net.KeepAliveConfig
}
