package resolver

// Package resolver turns hostnames from SOCKS5 domain-name targets into a
// single IP address.
//
// Two implementations are provided: System, which uses the operating
// system's resolver, and Upstream, which queries an explicit DNS server
// directly. Both apply the same rule for names with multiple records: the
// first address in resolution order wins. IP literals pass through without a
// lookup, since some SOCKS5 clients send literals with the domain-name
// address type.
