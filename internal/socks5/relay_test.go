package socks5

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/hollgren/socksd/internal/testutil"
)

func TestRelayForwardsBothDirections(t *testing.T) {
	clientNear, clientFar := net.Pipe()
	destNear, destFar := net.Pipe()
	defer clientNear.Close()
	defer destNear.Close()

	done := make(chan error, 1)
	go func() {
		done <- Relay(clientFar, destFar)
	}()

	deadline := time.Now().Add(2 * time.Second)
	_ = clientNear.SetDeadline(deadline)
	_ = destNear.SetDeadline(deadline)

	testutil.AssertEcho(t, clientNear, destNear, []byte("client to dest"))
	testutil.AssertEcho(t, destNear, clientNear, []byte("dest to client"))

	clientNear.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("relay: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not terminate after client close")
	}
}

func TestRelayClosesBothOnClientClose(t *testing.T) {
	clientNear, clientFar := net.Pipe()
	destNear, destFar := net.Pipe()
	defer destNear.Close()

	go func() {
		_ = Relay(clientFar, destFar)
	}()

	clientNear.Close()

	_ = destNear.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if n, err := destNear.Read(buf); err != io.EOF {
		t.Fatalf("expected destination to be closed, got n=%d err=%v", n, err)
	}
}

func TestRelayClosesBothOnDestClose(t *testing.T) {
	clientNear, clientFar := net.Pipe()
	destNear, destFar := net.Pipe()
	defer clientNear.Close()

	go func() {
		_ = Relay(clientFar, destFar)
	}()

	destNear.Close()

	_ = clientNear.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if n, err := clientNear.Read(buf); err != io.EOF {
		t.Fatalf("expected client to be closed, got n=%d err=%v", n, err)
	}
}
