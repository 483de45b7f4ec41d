package entry

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stowhouse/server-auth/sig"
)

// Middleware injects HTTP response handler logic to facilitate tracing and
// logging: every incoming request is tagged with an x-stow-request-id header
// (generated if the client didn't send one) and a customized slog.Logger
// instance, both stored in the request context, and all requests are logged.
// Note that a generated request id is assigned after signing and therefore
// isn't covered by the request's signature; ids that need to be signed must
// be set by the client before it computes its Authorization header.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Generate a unique ID for this request, if it doesn't already have one
			requestId := r.Header.Get(sig.HeaderRequestId)
			if requestId == "" {
				requestId = uuid.NewString()
			}

			// Prepare a logger with the relevant details of this request
			reqLogger := logger.With(
				"requestId", requestId,
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr,
			)
			reqLogger.Debug("Handling request")

			// Inject the request ID and logger into the request context, so
			// that HTTP handler functions can pull them out and use them
			ctx := context.WithValue(r.Context(), sig.HeaderRequestId, requestId)
			ctx = context.WithValue(ctx, "logger", reqLogger)
			r = r.WithContext(ctx)

			// Echo the request ID in the response so it's carried end-to-end
			w.Header().Set(sig.HeaderRequestId, requestId)

			// Wrap our ResponseWriter in a struct that will capture the
			// response code written by the HTTP handler
			recorder := statusRecorder{ResponseWriter: w}

			// Handle the request, measuring how long it takes to execute
			start := time.Now()
			next.ServeHTTP(&recorder, r)
			elapsed := time.Since(start)

			// Write a final log message indicating that the request is finished
			level := slog.LevelError
			if recorder.status >= 100 && recorder.status <= 499 {
				level = slog.LevelInfo
			}
			reqLogger.Log(r.Context(), level,
				"Request finished",
				"elapsedNanoseconds", elapsed.Nanoseconds(),
				"status", recorder.status,
			)
		})
	}
}

// Log returns a slog.Logger, guaranteed to be valid, for use within the
// context of the provided request
func Log(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value("logger").(*slog.Logger)
	if ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// statusRecorder wraps an http.ResponseWriter in order to intercept and store
// the HTTP status code for the response to a request
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) Write(data []byte) (int, error) {
	n, err := r.ResponseWriter.Write(data)
	if err == nil && r.status == 0 {
		r.status = http.StatusOK
	}
	return n, err
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
