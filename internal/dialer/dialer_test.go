package dialer

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/hollgren/socksd/internal/testutil"
)

func TestDirectDial(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ln, wait := testutil.StartSingleAcceptServer(t, ctx, func(c net.Conn) {
		buf := make([]byte, 64)
		n, err := c.Read(buf)
		if err != nil {
			return
		}
		_, _ = c.Write(buf[:n])
	})
	defer wait()

	d := NewDirect(Config{DialTimeout: 2 * time.Second})

	c, err := d.DialContext(ctx, "tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_ = c.SetDeadline(time.Now().Add(2 * time.Second))
	testutil.AssertEcho(t, c, c, []byte("direct"))
}

func TestDirectDialRefused(t *testing.T) {
	probe, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := probe.Addr().String()
	probe.Close()

	d := NewDirect(Config{DialTimeout: time.Second})

	if _, err := d.DialContext(context.Background(), "tcp", addr); err == nil {
		t.Fatal("expected dial to a closed port to fail")
	}
}
