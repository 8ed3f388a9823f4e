package resolver

import (
	"context"
	"fmt"
	"net"
)

// Resolver resolves a hostname to one IP address.
type Resolver interface {
	Resolve(ctx context.Context, host string) (net.IP, error)
}

// System resolves via the operating system resolver.
type System struct{}

func (System) Resolve(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}

	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", host, err)
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("lookup %s: no addresses", host)
	}

	return ips[0], nil
}
