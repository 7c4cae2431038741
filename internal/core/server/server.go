package server

import (
	"bytes"
	"time"

	"github.com/kyoto-db/kyoto/internal/core/domain"
	"github.com/kyoto-db/kyoto/internal/core/state"
	"github.com/kyoto-db/kyoto/internal/protocol"
	"github.com/kyoto-db/kyoto/internal/server/config"
	"github.com/kyoto-db/kyoto/internal/storage"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
	"github.com/kyoto-db/kyoto/internal/telemetry/metric"
)

// Response messages.
const (
	MsgKeyNotFound = "Key not found."
	MsgOK          = "Ok."
)

// Server is a handle onto the shared server state.
type Server struct {
	configInfo  *state.ConfigInfo
	machineInfo *state.MachineInfo
	dataInfo    *state.DataInfo
	db          storage.Engine

	logger   logger.Logger
	recorder Recorder
}

// New creates a Server. Without options it uses the default configuration
// and a single-lock in-memory engine.
func New(opts ...Option) (*Server, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.cfg == nil {
		o.cfg = config.Default()
	}
	if o.engine == nil {
		engine, err := storage.New(o.cfg.Storage.EngineConfig())
		if err != nil {
			return nil, err
		}
		o.engine = engine
	}
	if o.logger == nil {
		o.logger = logger.Default()
	}
	if o.recorder == nil {
		o.recorder = nopRecorder{}
	}

	return &Server{
		configInfo:  state.NewConfigInfo(o.cfg),
		machineInfo: state.NewMachineInfo(),
		dataInfo:    state.NewDataInfo(),
		db:          o.engine,
		logger:      o.logger,
		recorder:    o.recorder,
	}, nil
}

// Clone returns a new handle sharing all state with s.
func (s *Server) Clone() *Server {
	c := *s
	return &c
}

// Engine returns the storage engine.
func (s *Server) Engine() storage.Engine {
	return s.db
}

// Stats returns the current data statistics.
func (s *Server) Stats() state.DataStats {
	return s.dataInfo.Stats()
}

// HandleFlow runs an ExecuteCommand flow and rejects every other flow with
// domain.ErrInvalidFlow.
func (s *Server) HandleFlow(flow protocol.Flow) (protocol.RetFlow, error) {
	exec, ok := flow.(protocol.ExecuteCommand)
	if !ok || exec.Command == nil {
		s.recorder.ObserveInvalidFlow()
		s.logger.Debug("invalid flow", "flow", flowName(flow))
		return nil, domain.ErrInvalidFlow
	}
	return s.Execute(exec.Command)
}

// Execute runs cmd against the shared state.
func (s *Server) Execute(cmd protocol.Command) (protocol.RetFlow, error) {
	start := time.Now()

	var (
		resp protocol.Response
		err  error
	)
	switch c := cmd.(type) {
	case protocol.Get:
		resp = s.get(c)
	case protocol.Set:
		resp, err = s.set(c)
	case protocol.Info:
		resp = s.info()
	default:
		return nil, domain.ErrUnknownCommand
	}

	elapsed := time.Since(start)
	if err != nil {
		s.recorder.ObserveCommand(cmd.Name(), metric.ResultError, elapsed)
		s.logger.Debug("command failed", "command", cmd.Name(), "error", err, "duration", elapsed)
		return nil, err
	}

	s.recorder.ObserveCommand(cmd.Name(), metric.ResultOK, elapsed)
	s.logger.Debug("command executed", "command", cmd.Name(), "response_size", len(resp.Payload()), "duration", elapsed)
	return protocol.ReturnResponse{Response: resp}, nil
}

func (s *Server) get(c protocol.Get) protocol.Response {
	value, found := s.db.Get(c.Key)
	s.dataInfo.RecordGet(found)

	if !found {
		return protocol.Valid{Message: []byte(MsgKeyNotFound)}
	}
	return protocol.Valid{Message: value}
}

func (s *Server) set(c protocol.Set) (protocol.Response, error) {
	if err := s.db.Set(c.Key, c.Value); err != nil {
		s.dataInfo.RecordCommand()
		if !domain.IsDomainError(err, "") {
			err = domain.ErrStorageFailure.WithCause(err)
		}
		return nil, err
	}

	total := s.db.Len()
	s.dataInfo.RecordSet(total)
	return protocol.Valid{Message: []byte(MsgOK)}, nil
}

func (s *Server) info() protocol.Response {
	var buf bytes.Buffer
	s.configInfo.GenerateInfo(&buf)
	s.machineInfo.GenerateInfo(&buf)
	s.dataInfo.GenerateInfo(&buf)
	s.dataInfo.RecordCommand()

	return protocol.Valid{Message: buf.Bytes()}
}

func flowName(flow protocol.Flow) string {
	switch flow.(type) {
	case protocol.ExecuteCommand:
		return "execute_command"
	case protocol.ParseRequest:
		return "parse_request"
	case protocol.CloseConnection:
		return "close_connection"
	case nil:
		return "nil"
	default:
		return "unknown"
	}
}
