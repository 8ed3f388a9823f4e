package resolver

import (
	"context"
	"fmt"
	"net"

	"github.com/miekg/dns"
)

// Upstream resolves against a specific DNS server, bypassing the system
// resolver. A records are tried first; AAAA only when the A query yields
// nothing. The first answer wins.
type Upstream struct {
	server string
	client *dns.Client
}

// NewUpstream returns an Upstream querying the DNS server at addr
// (host:port, e.g. "8.8.8.8:53") over UDP.
func NewUpstream(addr string) *Upstream {
	return &Upstream{
		server: addr,
		client: &dns.Client{},
	}
}

func (u *Upstream) Resolve(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}

	ip, errA := u.query(ctx, host, dns.TypeA)
	if errA == nil {
		return ip, nil
	}

	ip, errAAAA := u.query(ctx, host, dns.TypeAAAA)
	if errAAAA == nil {
		return ip, nil
	}

	return nil, fmt.Errorf("resolve %s: %w", host, errA)
}

func (u *Upstream) query(ctx context.Context, host string, qtype uint16) (net.IP, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	resp, _, err := u.client.ExchangeContext(ctx, m, u.server)
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", dns.TypeToString[qtype], err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%s query: rcode %s", dns.TypeToString[qtype], dns.RcodeToString[resp.Rcode])
	}

	for _, ans := range resp.Answer {
		switch rr := ans.(type) {
		case *dns.A:
			return rr.A, nil
		case *dns.AAAA:
			return rr.AAAA, nil
		}
	}

	return nil, fmt.Errorf("%s query: no records", dns.TypeToString[qtype])
}
