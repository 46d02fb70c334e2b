package testutils

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// RCServer is a minimal stand-in for a player's RC interface. It reads
// command lines until "logout", answers, and closes the connection.
type RCServer struct {
	listener net.Listener
	respond  func(commands []string) string

	mu       sync.Mutex
	payloads []string
	wg       sync.WaitGroup
}

// NewRCServer starts a server on a loopback port. respond receives the
// lines sent before logout and returns the reply text.
func NewRCServer(t *testing.T, respond func(commands []string) string) *RCServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &RCServer{listener: ln, respond: respond}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(s.Close)
	return s
}

// Addr is the HOST:PORT the server listens on.
func (s *RCServer) Addr() string {
	return s.listener.Addr().String()
}

// Port is the listening port.
func (s *RCServer) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Payloads returns the raw bytes received on each connection, in order.
func (s *RCServer) Payloads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.payloads))
	copy(out, s.payloads)
	return out
}

// Close stops accepting and waits for open connections to finish.
func (s *RCServer) Close() {
	s.listener.Close()
	s.wg.Wait()
}

func (s *RCServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *RCServer) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	var raw strings.Builder
	var commands []string
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		raw.WriteString(line)
		if err != nil {
			break
		}
		line = strings.TrimSuffix(line, "\n")
		if line == "logout" {
			break
		}
		commands = append(commands, line)
	}

	s.mu.Lock()
	s.payloads = append(s.payloads, raw.String())
	s.mu.Unlock()

	if s.respond != nil {
		conn.Write([]byte(s.respond(commands)))
	}
}
