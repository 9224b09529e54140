package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/benor/lib/metrics"
	"boscoin.io/benor/lib/network/httputils"
)

func RecoverMiddleware(printStack bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", r)
					}
					httputils.WriteJSONError(w, err)
					log.Error("recover an panic", "err", err)
					if printStack {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits the requests per client IP; the paths in
// `except` are never limited.
func RateLimitMiddleware(rate limiter.Rate, except ...string) mux.MiddlewareFunc {
	m := stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate))

	skip := map[string]bool{}
	for _, p := range except {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		limited := m.Handler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			limited.ServeHTTP(w, r)
		})
	}
}

func MetricsMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()

			recorder := newResponseRecorder(w)
			next.ServeHTTP(recorder, r)

			lvs := []string{
				metrics.LabelEndpoint, routeName(r),
				metrics.LabelMethod, r.Method,
				metrics.LabelStatus, strconv.Itoa(recorder.status),
			}
			metrics.API.RequestsTotal.With(lvs...).Add(1)
			metrics.API.RequestDurationSeconds.With(lvs...).Observe(time.Since(begin).Seconds())
		})
	}
}
