package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// StatusRecorder receives the status of every response.
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.status = code
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.status = http.StatusOK
		sw.written = true
	}
	return sw.ResponseWriter.Write(b)
}

// Logging logs one line per request and feeds the status to rec (which may be nil).
func Logging(log *zap.Logger, rec StatusRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(start)),
			}
			if id, ok := ProfileID(r.Context()); ok {
				fields = append(fields, zap.String("profile_id", id))
			}
			log.Info("http request", fields...)

			if rec != nil {
				rec.RecordHTTPStatus(sw.status)
			}
		})
	}
}
