package socks5

import (
	"encoding/binary"
	"net"
)

// writeReply encodes and sends VER REP RSV ATYP BND.ADDR BND.PORT in one
// write. bound is the local address of the destination socket on success;
// passing nil (the refusal path) yields the all-zero IPv4 address and port,
// so a refused CONNECT always produces exactly
// [0x05 0x05 0x00 0x01 0 0 0 0 0 0].
func writeReply(conn net.Conn, rep byte, bound net.Addr) error {
	ip := net.IPv4zero
	port := 0
	if ta, ok := bound.(*net.TCPAddr); ok && ta.IP != nil {
		ip = ta.IP
		port = ta.Port
	}

	msg := make([]byte, 0, 22)
	msg = append(msg, Version, rep, reserved)
	if ip4 := ip.To4(); ip4 != nil {
		msg = append(msg, ATYPIPv4)
		msg = append(msg, ip4...)
	} else {
		msg = append(msg, ATYPIPv6)
		msg = append(msg, ip.To16()...)
	}
	msg = binary.BigEndian.AppendUint16(msg, uint16(port))

	_, err := conn.Write(msg)
	return err
}
