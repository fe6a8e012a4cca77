package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jbvmio/scripthub/metrics"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// observe logs and records metrics for every request, labelled by route template.
func (a *API) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		metrics.RecordHTTPRequest(r.Method, path, rec.status, duration)

		level := zap.DebugLevel
		switch {
		case rec.status >= 500:
			level = zap.ErrorLevel
		case rec.status >= 400:
			level = zap.WarnLevel
		}
		if ce := a.logger.Check(level, "http_request"); ce != nil {
			ce.Write(
				zap.String(`method`, r.Method),
				zap.String(`path`, r.URL.Path),
				zap.Int(`status`, rec.status),
				zap.Duration(`duration`, duration),
				zap.String(`client_ip`, r.RemoteAddr),
				zap.Int(`bytes`, rec.bytes),
			)
		}
	})
}
