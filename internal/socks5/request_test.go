package socks5

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/hollgren/socksd/internal/resolver"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name      string
		greeting  []byte
		wantErr   error
		wantReply []byte
	}{
		{
			name:      "no_auth_accepted",
			greeting:  []byte{0x05, 0x01, 0x00},
			wantReply: []byte{0x05, 0x00},
		},
		{
			name:      "no_auth_among_others",
			greeting:  []byte{0x05, 0x03, 0x02, 0x00, 0x01},
			wantReply: []byte{0x05, 0x00},
		},
		{
			name:     "bad_version",
			greeting: []byte{0x04, 0x01},
			wantErr:  ErrInvalidVersion,
		},
		{
			name:     "no_acceptable_method",
			greeting: []byte{0x05, 0x02, 0x01, 0x02},
			wantErr:  ErrUnsupportedAuthMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := net.Pipe()
			defer client.Close()

			errCh := make(chan error, 1)
			go func() {
				err := negotiate(server)
				// Mirror handleConn: any failure drops the connection.
				server.Close()
				errCh <- err
			}()

			_ = client.SetDeadline(time.Now().Add(2 * time.Second))
			if _, err := client.Write(tt.greeting); err != nil {
				t.Fatal(err)
			}

			if tt.wantErr != nil {
				if err := <-errCh; !errors.Is(err, tt.wantErr) {
					t.Fatalf("negotiate error = %v, want %v", err, tt.wantErr)
				}
				// The server must send nothing before closing.
				buf := make([]byte, 1)
				if n, err := client.Read(buf); n != 0 || err != io.EOF {
					t.Fatalf("expected silent close, got n=%d err=%v", n, err)
				}
				return
			}

			reply := make([]byte, len(tt.wantReply))
			if _, err := io.ReadFull(client, reply); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(reply, tt.wantReply) {
				t.Fatalf("reply = %v, want %v", reply, tt.wantReply)
			}
			if err := <-errCh; err != nil {
				t.Fatalf("negotiate: %v", err)
			}
		})
	}
}

func TestReadRequest(t *testing.T) {
	tests := []struct {
		name     string
		request  []byte
		wantErr  error
		wantAddr string
	}{
		{
			name:     "ipv4",
			request:  []byte{0x05, 0x01, 0x00, 0x01, 192, 168, 1, 1, 0x1f, 0x90},
			wantAddr: "192.168.1.1:8080",
		},
		{
			name: "ipv6",
			request: append(append([]byte{0x05, 0x01, 0x00, 0x04},
				net.ParseIP("2001:db8::1").To16()...), 0x01, 0xbb),
			wantAddr: "[2001:db8::1]:443",
		},
		{
			name:    "bad_version",
			request: []byte{0x04, 0x01, 0x00, 0x01},
			wantErr: ErrInvalidVersion,
		},
		{
			name:    "bind_unsupported",
			request: []byte{0x05, 0x02, 0x00, 0x01},
			wantErr: ErrUnsupportedCommand,
		},
		{
			name:    "udp_associate_unsupported",
			request: []byte{0x05, 0x03, 0x00, 0x01},
			wantErr: ErrUnsupportedCommand,
		},
		{
			name:    "bad_address_type",
			request: []byte{0x05, 0x01, 0x00, 0x02, 0, 0, 0, 0, 0, 0},
			wantErr: ErrInvalidAddressType,
		},
	}

	srv := NewServer(Config{Resolver: resolver.System{}}, discardLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := net.Pipe()
			defer client.Close()
			defer server.Close()

			go func() {
				_, _ = client.Write(tt.request)
			}()

			_ = server.SetDeadline(time.Now().Add(2 * time.Second))
			target, err := srv.readRequest(context.Background(), server)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("readRequest error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := target.String(); got != tt.wantAddr {
				t.Fatalf("target = %s, want %s", got, tt.wantAddr)
			}
		})
	}
}

func TestReadRequestDomain(t *testing.T) {
	srv := NewServer(Config{Resolver: resolver.System{}}, discardLogger())

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	request := append([]byte{0x05, 0x01, 0x00, 0x03, 9}, []byte("localhost")...)
	request = append(request, 0x00, 0x50)
	go func() {
		_, _ = client.Write(request)
	}()

	_ = server.SetDeadline(time.Now().Add(5 * time.Second))
	target, err := srv.readRequest(context.Background(), server)
	if err != nil {
		t.Fatal(err)
	}
	if !target.IP.IsLoopback() {
		t.Fatalf("expected loopback address for localhost, got %s", target.IP)
	}
	if target.Port != 80 {
		t.Fatalf("port = %d, want 80", target.Port)
	}
}

func TestReadRequestTruncated(t *testing.T) {
	srv := NewServer(Config{Resolver: resolver.System{}}, discardLogger())

	client, server := net.Pipe()
	defer server.Close()

	// Client closes mid-address; the exact-length read must fail.
	go func() {
		_, _ = client.Write([]byte{0x05, 0x01, 0x00, 0x01, 192, 168})
		client.Close()
	}()

	_ = server.SetDeadline(time.Now().Add(2 * time.Second))
	if _, err := srv.readRequest(context.Background(), server); !errors.Is(err, ErrConnectionFailed) {
		t.Fatalf("readRequest error = %v, want %v", err, ErrConnectionFailed)
	}
}
