package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/kyoto-db/kyoto/internal/core/domain"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// Context keys for request-scoped values.
type contextKey string

const (
	// ContextKeyRequestID is the context key for request ID.
	ContextKeyRequestID contextKey = "request_id"

	// ContextKeyStartTime is the context key for request start time.
	ContextKeyStartTime contextKey = "start_time"

	// ContextKeyClientIP is the context key for the resolved client IP.
	ContextKeyClientIP contextKey = "client_ip"
)

// maxTrackedClients bounds the per-IP limiter map before idle entries are
// swept.
const maxTrackedClients = 10000

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together.
// The first middleware is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID adds a unique request ID to each request.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = "req-" + ulid.Make().String()
			}

			w.Header().Set("X-Request-ID", requestID)

			ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
			ctx = context.WithValue(ctx, ContextKeyStartTime, time.Now())
			ctx = logger.WithRequestID(ctx, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// limiterRegistry holds one token bucket per client IP.
type limiterRegistry struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (r *limiterRegistry) get(ip string) *rate.Limiter {
	r.mu.RLock()
	limiter, ok := r.limiters[ip]
	r.mu.RUnlock()
	if ok {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if limiter, ok := r.limiters[ip]; ok {
		return limiter
	}
	if len(r.limiters) >= maxTrackedClients {
		r.sweepLocked()
	}
	limiter = rate.NewLimiter(r.limit, r.burst)
	r.limiters[ip] = limiter
	return limiter
}

// sweepLocked drops limiters whose bucket has refilled. A full bucket
// behaves exactly like a new one.
func (r *limiterRegistry) sweepLocked() {
	for ip, limiter := range r.limiters {
		if limiter.Tokens() >= float64(r.burst) {
			delete(r.limiters, ip)
		}
	}
}

func (r *limiterRegistry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.limiters)
}

// RateLimit limits each client IP to requestsPerSecond, with a burst of
// the same size. A non-positive rate disables limiting.
func RateLimit(requestsPerSecond int) Middleware {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	reg := &limiterRegistry{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(requestsPerSecond),
		burst:    requestsPerSecond,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !reg.get(getClientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, domain.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AccessLog logs every completed request.
func AccessLog(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			startTime, _ := r.Context().Value(ContextKeyStartTime).(time.Time)
			duration := time.Since(startTime)

			attrs := []any{
				"request_id", GetRequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"client_ip", getClientIP(r),
			}

			switch {
			case wrapped.statusCode >= 500:
				log.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				log.Warn("request completed with client error", attrs...)
			default:
				log.Debug("request completed", attrs...)
			}
		})
	}
}

// Recover recovers from panics in HTTP handlers and returns 500.
func Recover(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						"request_id", GetRequestIDFromContext(r.Context()),
						"error", err,
						"path", r.URL.Path,
					)
					writeError(w, http.StatusInternalServerError, domain.ErrInternal)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// NetworkACL rejects clients whose IP is not in allowList.
// An empty allow list lets every client through. Invalid entries are
// logged and skipped.
func NetworkACL(allowList []string, log logger.Logger) Middleware {
	allowed := parseIPSet(allowList, "allowlist", log)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowed.empty() {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			if allowed.contains(net.ParseIP(clientIP)) {
				next.ServeHTTP(w, r)
				return
			}

			log.Warn("request denied by network ACL",
				"client_ip", clientIP,
				"path", r.URL.Path,
			)
			writeError(w, http.StatusForbidden, domain.ErrForbidden)
		})
	}
}

// ClientIP resolves the client address once per request. The peer address
// is used unless the peer is one of trustedProxies, in which case the
// forwarding headers are read.
func ClientIP(trustedProxies []string, log logger.Logger) Middleware {
	trusted := parseIPSet(trustedProxies, "trusted proxy list", log)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := resolveClientIP(r, trusted)
			ctx := context.WithValue(r.Context(), ContextKeyClientIP, ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ipSet matches addresses against single IPs and CIDR networks.
type ipSet struct {
	ips      []net.IP
	networks []*net.IPNet
}

func parseIPSet(entries []string, name string, log logger.Logger) ipSet {
	var set ipSet
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			_, ipNet, err := net.ParseCIDR(entry)
			if err != nil {
				log.Warn("invalid CIDR in "+name, "entry", entry, "error", err)
				continue
			}
			set.networks = append(set.networks, ipNet)
			continue
		}

		ip := net.ParseIP(entry)
		if ip == nil {
			log.Warn("invalid IP in "+name, "entry", entry)
			continue
		}
		set.ips = append(set.ips, ip)
	}
	return set
}

func (s ipSet) empty() bool {
	return len(s.ips) == 0 && len(s.networks) == 0
}

func (s ipSet) contains(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range s.ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range s.networks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// GetRequestIDFromContext retrieves the request ID from context.
func GetRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// writeError writes a domain error as a JSON body.
func writeError(w http.ResponseWriter, status int, err *domain.DomainError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", err.Code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    err.Code,
		"message": err.Message,
	})
}

// getClientIP returns the IP resolved by ClientIP, or the peer address
// when that middleware did not run.
func getClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return remoteIP(r)
}

// resolveClientIP walks X-Forwarded-For from the nearest hop and returns
// the first address that is not a trusted proxy.
func resolveClientIP(r *http.Request, trusted ipSet) string {
	peer := remoteIP(r)
	if !trusted.contains(net.ParseIP(peer)) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			ip := net.ParseIP(hop)
			if ip == nil {
				break
			}
			if !trusted.contains(ip) {
				return hop
			}
		}
		return peer
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	return peer
}

func remoteIP(r *http.Request) string {
	// SplitHostPort handles bracketed IPv6 addresses like [::1]:8080.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
