package handlers

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/GGmuzem/showcase-api/internal/config"
	"github.com/GGmuzem/showcase-api/internal/logger"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observeMiddleware логирует запрос и учитывает его в метриках
func (h *Handler) observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := routeTemplate(r)
		h.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", rec.status,
			"duration", elapsed)
		if h.metrics != nil {
			h.metrics.ObserveRequest(route, r.Method, rec.status, elapsed)
		}
	})
}

// recoverMiddleware превращает панику обработчика в ответ 500
func (h *Handler) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				h.log.Error("panic in handler", "path", r.URL.Path, "panic", p)
				writeJSON(h.log, w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unknown"
}

// rateLimiter ограничивает частоту запросов с одного адреса
type rateLimiter struct {
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	byKey   map[string]*rateLimitEntry
	hits    uint64
	idleTTL time.Duration
	log     *logger.Logger
}

type rateLimitEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(cfg config.RateLimit, log *logger.Logger) *rateLimiter {
	if !cfg.Enabled {
		return nil
	}
	return &rateLimiter{
		limit:   rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		byKey:   make(map[string]*rateLimitEntry),
		idleTTL: 10 * time.Minute,
		log:     log,
	}
}

func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.byKey[key]
	if !ok {
		entry = &rateLimitEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = entry
	}
	entry.lastSeen = now
	allowed := entry.limiter.AllowN(now, 1)

	// периодически выбрасываем давно неактивных клиентов
	l.hits++
	if l.hits%512 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byKey {
			if v.lastSeen.Before(cutoff) {
				delete(l.byKey, k)
			}
		}
	}
	return allowed
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientKey(r), time.Now()) {
			writeJSON(l.log, w, http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(remote)
	if err != nil || host == "" {
		return remote
	}
	return host
}
