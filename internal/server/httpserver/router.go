package httpserver

import (
	"net/http"

	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/server/httpserver/handler"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Server is the shared server the handlers read from.
	Server *core.Server

	// Metrics serves /metrics. Nil answers 404.
	Metrics http.Handler

	// Logger for request logging.
	Logger logger.Logger

	// AllowList is the IP/CIDR allowlist (empty = no restriction).
	AllowList []string

	// TrustedProxies lists the IPs/CIDRs whose forwarding headers are
	// believed. Empty means the peer address is always the client.
	TrustedProxies []string

	// RateLimit is the per-IP rate in requests per second (0 = unlimited).
	RateLimit int

	// AccessLog enables per-request logging.
	AccessLog bool
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(cfg.Server, cfg.Metrics, log)

	// Order: Recover -> RequestID -> ClientIP -> NetworkACL -> RateLimit -> AccessLog -> Handler
	middlewares := []Middleware{
		Recover(log),
		RequestID(),
		ClientIP(cfg.TrustedProxies, log),
		NetworkACL(cfg.AllowList, log),
		RateLimit(cfg.RateLimit),
	}
	if cfg.AccessLog {
		middlewares = append(middlewares, AccessLog(log))
	}

	// Health probes skip ACL and rate limiting.
	health := Chain(h, Recover(log), RequestID())
	guarded := Chain(h, middlewares...)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", health)
	mux.Handle("GET /readyz", health)
	mux.Handle("GET /metrics", guarded)
	mux.Handle("GET /info", guarded)
	mux.Handle("GET /stats", guarded)

	return mux
}
