package network

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/benor/lib/common"
)

// serverErrorWriter sends the errors of `http.Server` to the node logger.
type serverErrorWriter struct {
	l logging.Logger
}

func (w serverErrorWriter) Write(b []byte) (int, error) {
	w.l.Error("http server error", "error", strings.TrimSpace(string(b)))
	return len(b), nil
}

// responseRecorder keeps the status and the size of a response.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.size += size
	return size, err
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// routeName is the path template of the matched route, so `/tally/3` and
// `/tally/4` are the same route.
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}

	return r.URL.Path
}

// adminLogHandler logs the admin requests of a node at debug level.
// Envelopes posted to `/message` are frequent, so only the failed ones are
// logged.
type adminLogHandler struct {
	log     logging.Logger
	handler http.Handler
}

func (h adminLogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	l := h.log.New(logging.Ctx{"request": common.GenerateUUID()})

	isMessage := r.URL.Path == UrlPathMessage
	if !isMessage {
		l.Debug(
			"admin request",
			"method", r.Method,
			"uri", r.URL.RequestURI(),
			"remote", r.RemoteAddr,
			"proto", r.Proto,
		)
	}

	recorder := newResponseRecorder(w)
	h.handler.ServeHTTP(recorder, r)

	if isMessage && recorder.status == http.StatusOK {
		return
	}

	l.Debug(
		"admin response",
		"uri", r.URL.RequestURI(),
		"status", recorder.status,
		"size", recorder.size,
		"elapsed", time.Since(begin),
	)
}
