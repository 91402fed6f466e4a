// Package httpapi wires spec §4.7's trailing-path-segment dispatcher onto
// the service actor, grounded in the teacher's internal/server package (one
// *http.Server built by a New-style constructor, handlers hung off a small
// struct, a JSON-writing helper) but routing by path shape instead of Go
// 1.22 method+pattern mux entries, since the action is the last path
// segment rather than a fixed route.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/registry"
)

// Router dispatches textroom's HTTP and WebSocket surface.
type Router struct {
	registry     *registry.Controller
	logger       *zap.Logger
	pingInterval time.Duration
}

// New builds the *http.Server textroomd listens with.
func New(addr string, reg *registry.Controller, logger *zap.Logger, pingInterval time.Duration) *http.Server {
	router := &Router{registry: reg, logger: logger, pingInterval: pingInterval}

	mux := http.NewServeMux()
	mux.Handle("/", router)
	mux.Handle("/metrics", promhttp.Handler())
	registerDebug(mux)

	return &http.Server{
		Addr:         addr,
		Handler:      requestIDMiddleware(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest, action := splitLastSegment(r.URL.Path)
	query, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		writeError(w, err)
		return
	}

	switch action {
	case "create":
		if rest == "" {
			writeNotFound(w)
			return
		}
		rt.handleCreate(w, r, rest, query)
	case "destroy":
		if rest == "" {
			writeNotFound(w)
			return
		}
		rt.handleDestroy(w, r, rest, query)
	case "status":
		if rest == "" {
			rt.handleServiceStatus(w, r)
		} else {
			rt.handleRoomStatus(w, r, rest)
		}
	case "join":
		if rest == "" {
			writeNotFound(w)
			return
		}
		rt.handleJoin(w, r, rest, query)
	case "count":
		if rest == "" {
			writeNotFound(w)
			return
		}
		rt.handleCount(w, r, rest)
	case "lastAnnouncement":
		if rest == "" {
			writeNotFound(w)
			return
		}
		rt.handleLastAnnouncement(w, r, rest, query)
	case "participants":
		if rest == "" {
			writeNotFound(w)
			return
		}
		rt.handleParticipants(w, r, rest)
	case "photo":
		if rest == "" {
			writeNotFound(w)
			return
		}
		rt.handlePhoto(w, r, rest, query)
	default:
		writeNotFound(w)
	}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
}

// splitLastSegment divides path into everything before the last '/' and the
// segment after it, trimming leading/trailing slashes first.
func splitLastSegment(path string) (rest, action string) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "", ""
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return "", trimmed
	}
	return trimmed[:idx], trimmed[idx+1:]
}

func requestIDMiddleware(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
