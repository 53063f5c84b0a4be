package httphandler

import (
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// AllowJSON rejects requests whose body is not JSON.
func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			writeJSON(w, http.StatusUnsupportedMediaType,
				ErrorBody{Detail: "unsupported media type"})
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// RequestID keeps the incoming request id or assigns a new one and echoes
// it in the response.
func RequestID(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func AccessLog(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"op", "httphandler.AccessLog",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"requestID", r.Header.Get(RequestIDHeader),
		)
	}
	return http.HandlerFunc(hf)
}

func Recover(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			slog.Error("handler panic",
				"op", "httphandler.Recover",
				"panic", v,
				"requestID", r.Header.Get(RequestIDHeader),
			)
			writeJSON(w, http.StatusInternalServerError,
				ErrorBody{Detail: "internal error"})
		}()
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// Wrap applies the middleware chain in the order requests pass it.
func Wrap(h http.Handler) http.Handler {
	h = AllowJSON(h)
	h = AccessLog(h)
	h = RequestID(h)
	return Recover(h)
}
