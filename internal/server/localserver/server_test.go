package localserver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

func newCore(t *testing.T) *core.Server {
	t.Helper()
	srv, err := core.New(core.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("core.New() error = %v", err)
	}
	return srv
}

// readReply reads one reply and returns its payload, or an error line
// prefixed with "-".
func readReply(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	head, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	head = strings.TrimSuffix(head, "\n")

	switch {
	case strings.HasPrefix(head, "-"):
		return head
	case strings.HasPrefix(head, "$"):
		n, err := strconv.Atoi(head[1:])
		if err != nil {
			t.Fatalf("bad length %q", head)
		}
		buf := make([]byte, n+1)
		if _, err := io.ReadFull(r, buf); err != nil {
			t.Fatalf("read payload: %v", err)
		}
		return string(buf[:n])
	default:
		t.Fatalf("unexpected reply %q", head)
		return ""
	}
}

func TestHandleConnection(t *testing.T) {
	s := New("", newCore(t), logger.Nop())
	client, conn := net.Pipe()
	defer client.Close()

	go s.handleConnection(conn, s.core.Clone())

	r := bufio.NewReader(client)
	tests := []struct {
		line string
		want string
	}{
		{"GET a", core.MsgKeyNotFound},
		{"SET a hello", core.MsgOK},
		{"get a", "hello"},
		{"DEL a", "-[KY-CMD-4000] unknown command: DEL"},
		{"SET a", "-[KY-CMD-4001] wrong number of arguments: SET expects 2 arguments"},
	}

	for _, tt := range tests {
		if _, err := fmt.Fprintf(client, "%s\n", tt.line); err != nil {
			t.Fatalf("write %q: %v", tt.line, err)
		}
		if got := readReply(t, r); got != tt.want {
			t.Errorf("%q -> %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestHandleConnection_InfoMultiline(t *testing.T) {
	s := New("", newCore(t), logger.Nop())
	client, conn := net.Pipe()
	defer client.Close()

	go s.handleConnection(conn, s.core.Clone())

	fmt.Fprintf(client, "INFO\n")
	got := readReply(t, bufio.NewReader(client))

	if !strings.Contains(got, "port: 9736\n") || !strings.Contains(got, "# Data\n") {
		t.Errorf("INFO = %q", got)
	}
}

func TestHandleConnection_Quit(t *testing.T) {
	s := New("", newCore(t), logger.Nop())
	client, conn := net.Pipe()
	defer client.Close()

	done := make(chan struct{})
	go func() {
		s.handleConnection(conn, s.core.Clone())
		close(done)
	}()

	fmt.Fprintf(client, "quit\n")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("connection not closed after quit")
	}
}

func TestServe_SharedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kyoto.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}

	s := New(path, newCore(t), logger.Nop())
	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ln) }()

	c1, err := net.Dial("unix", path)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c1.Close()
	c2, err := net.Dial("unix", path)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c2.Close()

	fmt.Fprintf(c1, "SET shared 42\n")
	if got := readReply(t, bufio.NewReader(c1)); got != core.MsgOK {
		t.Fatalf("SET = %q", got)
	}

	fmt.Fprintf(c2, "GET shared\n")
	if got := readReply(t, bufio.NewReader(c2)); got != "42" {
		t.Errorf("GET from second connection = %q, want %q", got, "42")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := <-serveErr; err != nil {
		t.Errorf("Serve() error = %v", err)
	}
}

// gatedListener hands out queued connections and keeps returning them
// even after Close, like an Accept that raced with Shutdown.
type gatedListener struct {
	conns     chan net.Conn
	accepting chan struct{}
	closed    chan struct{}
	once      sync.Once
}

func newGatedListener() *gatedListener {
	return &gatedListener{
		conns:     make(chan net.Conn, 1),
		accepting: make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
}

func (l *gatedListener) Accept() (net.Conn, error) {
	select {
	case l.accepting <- struct{}{}:
	default:
	}
	if conn, ok := <-l.conns; ok {
		return conn, nil
	}
	return nil, net.ErrClosed
}

func (l *gatedListener) Close() error {
	l.once.Do(func() { close(l.closed) })
	return nil
}

func (l *gatedListener) Addr() net.Addr { return &net.UnixAddr{Name: "gated", Net: "unix"} }

func TestServe_ConnAcceptedDuringShutdown(t *testing.T) {
	ln := newGatedListener()
	s := New("gated", newCore(t), logger.Nop())

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ln) }()
	<-ln.accepting

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	client, server := net.Pipe()
	defer client.Close()
	ln.conns <- server
	close(ln.conns)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := client.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("read from late connection = %v, want io.EOF", err)
	}

	select {
	case err := <-serveErr:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestServe_AfterShutdown(t *testing.T) {
	s := New("gated", newCore(t), logger.Nop())
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	ln := newGatedListener()
	if err := s.Serve(ln); err != nil {
		t.Errorf("Serve() error = %v, want nil", err)
	}
	select {
	case <-ln.closed:
	default:
		t.Error("listener not closed by Serve after Shutdown")
	}
}
