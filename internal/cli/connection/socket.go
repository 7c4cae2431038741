package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrServer is wrapped by errors the server reported for a command.
var ErrServer = errors.New("server error")

// SocketClient talks to the local management socket.
type SocketClient struct {
	path    string
	timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewSocketClient creates a new socket client.
func NewSocketClient(socketPath string) *SocketClient {
	return &SocketClient{path: socketPath, timeout: 10 * time.Second}
}

// Connect connects to the local socket.
func (c *SocketClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *SocketClient) connectLocked() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", c.path, c.timeout)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.path, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the socket connection.
func (c *SocketClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// Name implements Executor.
func (c *SocketClient) Name() string { return "unix:" + c.path }

// Execute sends one command line and reads its reply.
func (c *SocketClient) Execute(ctx context.Context, args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrServer)
	}
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\r\n") {
			return nil, fmt.Errorf("argument %q cannot be sent over the socket", a)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	c.conn.SetDeadline(deadline)

	if _, err := io.WriteString(c.conn, strings.Join(args, " ")+"\n"); err != nil {
		c.resetLocked()
		return nil, err
	}

	payload, err := readReply(c.reader)
	if err != nil && !errors.Is(err, ErrServer) {
		c.resetLocked()
	}
	return payload, err
}

func (c *SocketClient) resetLocked() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = nil
	c.reader = nil
}

// readReply decodes "$<n>\n<payload>\n" or "-<message>\n".
func readReply(r *bufio.Reader) ([]byte, error) {
	head, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	head = strings.TrimSuffix(head, "\n")

	switch {
	case strings.HasPrefix(head, "-"):
		return nil, fmt.Errorf("%w: %s", ErrServer, head[1:])
	case strings.HasPrefix(head, "$"):
		n, err := strconv.Atoi(head[1:])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed reply length %q", head)
		}
		buf := make([]byte, n+1)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf[:n], nil
	default:
		return nil, fmt.Errorf("malformed reply %q", head)
	}
}
