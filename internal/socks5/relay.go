package socks5

import (
	"errors"
	"io"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Relay copies bytes between client and dest in both directions until either
// side reaches end-of-stream or fails. The first direction to finish closes
// both conns, which unblocks the other direction; the two streams always
// come down together, never one at a time.
func Relay(client, dest net.Conn) error {
	var once sync.Once
	closeBoth := func() {
		once.Do(func() {
			_ = client.Close()
			_ = dest.Close()
		})
	}
	defer closeBoth()

	var g errgroup.Group

	g.Go(func() error {
		err := copyDirection(dest, client)
		closeBoth()
		return err
	})

	g.Go(func() error {
		err := copyDirection(client, dest)
		closeBoth()
		return err
	})

	return g.Wait()
}

// copyDirection pumps one direction through a pooled fixed-size buffer. EOF
// and reads or writes racing the other direction's teardown are normal
// termination, not errors.
func copyDirection(dst io.Writer, src io.Reader) error {
	buf := relayBuffers.Get()
	defer relayBuffers.Put(buf)

	_, err := io.CopyBuffer(dst, src, buf)
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}
