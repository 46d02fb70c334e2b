// Package rc talks to a media player's line-oriented remote-control
// interface.
//
// The RC interface accepts several connections but only services the
// first one, queueing commands from the rest with no way to tell them
// so. Each command therefore gets its own connection, and every payload
// ends with "logout" so the server releases the session and closes the
// stream, which is also how the client knows the response is complete.
package rc

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"time"

	"vlcrc/internal/errors"
	"vlcrc/internal/log"
)

const (
	// DefaultDialTimeout bounds connection setup.
	DefaultDialTimeout = 5 * time.Second

	logout    = "logout\n"
	chunkSize = 4096
)

// Dialer opens the stream for one command.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Client issues commands to one server.
type Client struct {
	addr        ServerAddress
	dialer      Dialer
	dialTimeout time.Duration
	ioTimeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithDialTimeout bounds connection setup. Zero means no bound.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) { c.dialTimeout = d }
}

// WithIOTimeout bounds the whole send/receive exchange once connected.
// Zero, the default, waits for the server indefinitely.
func WithIOTimeout(d time.Duration) Option {
	return func(c *Client) { c.ioTimeout = d }
}

// WithDialer replaces the network dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// NewClient creates a client for addr.
func NewClient(addr ServerAddress, opts ...Option) *Client {
	c := &Client{
		addr:        addr,
		dialer:      &net.Dialer{},
		dialTimeout: DefaultDialTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Address returns the server this client talks to.
func (c *Client) Address() ServerAddress {
	return c.addr
}

// Payload is the exact byte sequence sent for command.
func Payload(command string) []byte {
	return []byte(command + "\n" + logout)
}

// Issue connects, sends command followed by logout, reads until the
// server closes the stream, and returns everything it sent back.
func (c *Client) Issue(ctx context.Context, command string) (string, error) {
	start := time.Now()
	address := c.addr.String()
	logger := log.LogWithFields(log.F("address", address), log.F("command", command))

	dialCtx := ctx
	if c.dialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.dialTimeout)
		defer cancel()
	}
	conn, err := c.dialer.DialContext(dialCtx, "tcp", address)
	if err != nil {
		return "", errors.NewConnectionError("dial", address, err)
	}
	defer conn.Close()

	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.SetNoDelay(true); err != nil {
			logger.With(log.F("error", err)).Warn("could not disable send coalescing")
		}
	}
	if c.ioTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(c.ioTimeout)); err != nil {
			return "", errors.NewConnectionError("deadline", address, err)
		}
	}

	payload := Payload(command)
	if err := writeAll(conn, payload); err != nil {
		return "", errors.NewConnectionError("write", address, err)
	}

	raw, err := readAll(conn)
	if err != nil {
		return "", errors.NewConnectionError("read", address, err)
	}

	logger.With(
		log.F("sent", len(payload)),
		log.F("received", len(raw)),
		log.F("elapsed", time.Since(start).String()),
	).Debug("command issued")
	return strings.ToValidUTF8(string(raw), "�"), nil
}

// writeAll keeps writing until every byte of p is accepted.
func writeAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}

// readAll accumulates chunks in arrival order until the peer closes.
func readAll(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
