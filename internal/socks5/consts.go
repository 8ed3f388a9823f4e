package socks5

// Protocol constants for the SOCKS5 subset this server speaks.
const (
	Version = 0x05

	MethodNoAuth       = 0x00
	MethodNoAcceptable = 0xff

	CmdConnect = 0x01

	ATYPIPv4   = 0x01
	ATYPDomain = 0x03
	ATYPIPv6   = 0x04

	RepSucceeded         = 0x00
	RepConnectionRefused = 0x05

	reserved = 0x00
)

// relayBufferSize is the per-iteration copy buffer used by the relay engine.
const relayBufferSize = 4096
