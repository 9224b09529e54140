package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter"
)

func TestRecoverMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(RecoverMiddleware(false))

	panicMsg := "Don't panic,just use go"
	router.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		panic(panicMsg)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/test", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	require.Equal(t, "panic: "+panicMsg, msg["message"])
}

func TestRateLimitMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(limiter.Rate{Period: time.Minute, Limit: 2}, UrlPathMessage))

	ok := func(w http.ResponseWriter, r *http.Request) {}
	router.HandleFunc(UrlPathStatus, ok)
	router.HandleFunc(UrlPathMessage, ok)

	request := func(path string) int {
		r := httptest.NewRequest("GET", path, nil)
		r.RemoteAddr = "10.0.0.1:5000"

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, r)
		return rr.Code
	}

	require.Equal(t, http.StatusOK, request(UrlPathStatus))
	require.Equal(t, http.StatusOK, request(UrlPathStatus))
	require.Equal(t, http.StatusTooManyRequests, request(UrlPathStatus))

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, request(UrlPathMessage))
	}
}

func TestMetricsMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(MetricsMiddleware())
	router.HandleFunc("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/teapot", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRouteName(t *testing.T) {
	var names []string

	router := mux.NewRouter()
	router.HandleFunc(UrlPathTally, func(w http.ResponseWriter, r *http.Request) {
		names = append(names, routeName(r))
	})

	for _, path := range []string{"/tally/1", "/tally/20"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}
	require.Equal(t, []string{UrlPathTally, UrlPathTally}, names)

	// outside of a router
	require.Equal(t, "/tally/3", routeName(httptest.NewRequest("GET", "/tally/3", nil)))
}

func TestAdminLogHandler(t *testing.T) {
	var records []*logging.Record
	l := logging.New()
	l.SetHandler(logging.FuncHandler(func(r *logging.Record) error {
		records = append(records, r)
		return nil
	}))

	router := mux.NewRouter()
	router.HandleFunc(UrlPathStatus, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("live"))
	})
	router.HandleFunc(UrlPathMessage, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("broken") != "" {
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	handler := adminLogHandler{log: l, handler: router}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", UrlPathStatus, nil))
	require.Len(t, records, 2)
	require.Equal(t, "admin request", records[0].Msg)
	require.Equal(t, "admin response", records[1].Msg)

	ctx := func(r *logging.Record, key string) interface{} {
		for i := 0; i < len(r.Ctx); i += 2 {
			if r.Ctx[i] == key {
				return r.Ctx[i+1]
			}
		}
		return nil
	}
	require.NotNil(t, ctx(records[0], "request"))
	require.Equal(t, ctx(records[0], "request"), ctx(records[1], "request"))
	require.Equal(t, http.StatusOK, ctx(records[1], "status"))
	require.Equal(t, 4, ctx(records[1], "size"))

	// accepted envelopes are not logged
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", UrlPathMessage, nil))
	require.Len(t, records, 2)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", UrlPathMessage+"?broken=1", nil))
	require.Len(t, records, 3)
	require.Equal(t, http.StatusBadRequest, ctx(records[2], "status"))
}
