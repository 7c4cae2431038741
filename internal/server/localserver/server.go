package localserver

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/protocol"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// maxLineSize bounds a single request line.
const maxLineSize = 1 << 20

// Server represents the local management server.
type Server struct {
	core     *core.Server
	logger   logger.Logger
	listener net.Listener
	path     string
	running  atomic.Bool
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool
	conns  map[net.Conn]struct{}
}

// New creates a local server for socketPath backed by srv.
func New(socketPath string, srv *core.Server, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		core:   srv,
		logger: log.With("component", "localserver"),
		path:   socketPath,
		conns:  make(map[net.Conn]struct{}),
	}
}

// ListenAndServe listens on the socket path and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown. It returns nil at once
// if Shutdown already ran.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.listener = ln
	s.running.Store(true)
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		if !s.track(conn) {
			conn.Close()
			continue
		}
		go func() {
			defer s.untrack(conn)
			s.handleConnection(conn, s.core.Clone())
		}()
	}
}

// Shutdown stops accepting connections, closes open ones and waits for
// their handlers to return or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	var closeErr error
	s.mu.Lock()
	s.closed = true
	s.running.Store(false)
	if s.listener != nil {
		closeErr = s.listener.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// track registers conn and its handler. It refuses once Shutdown has
// started, so no handler is added while Shutdown waits.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	s.wg.Done()
}

func (s *Server) handleConnection(conn net.Conn, srv *core.Server) {
	defer conn.Close()

	log := s.logger.With("conn_id", ulid.Make().String())
	log.Debug("connection opened")
	defer log.Debug("connection closed")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	w := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			return
		}

		reply(w, handleLine(srv, line))
		if err := w.Flush(); err != nil {
			log.Debug("write failed", "error", err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Debug("read failed", "error", err)
	}
}

type result struct {
	payload []byte
	err     error
}

func handleLine(srv *core.Server, line string) result {
	cmd, err := protocol.ParseArgs(strings.Fields(line))
	if err != nil {
		return result{err: err}
	}

	ret, err := srv.HandleFlow(protocol.ExecuteCommand{Command: cmd})
	if err != nil {
		return result{err: err}
	}

	rr, ok := ret.(protocol.ReturnResponse)
	if !ok {
		return result{}
	}
	return result{payload: rr.Response.Payload()}
}

func reply(w *bufio.Writer, r result) {
	if r.err != nil {
		w.WriteString("-")
		w.WriteString(r.err.Error())
		w.WriteString("\n")
		return
	}
	w.WriteString("$")
	w.WriteString(strconv.Itoa(len(r.payload)))
	w.WriteString("\n")
	w.Write(r.payload)
	w.WriteString("\n")
}
