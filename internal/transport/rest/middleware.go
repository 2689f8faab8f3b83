package rest

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/pkg/logger"
)

// requestIDMiddleware tags every request with an id and logs it on the way
// in, so failures in the handlers can be correlated with access entries.
func requestIDMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			log.Debug("request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr))

			next.ServeHTTP(w, r)
		})
	}
}
