package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"

	"boscoin.io/benor/lib/errors"
)

type HALResource interface {
	Resource() *hal.Resource
}

var ErrorsToStatus = map[uint]int{
	errors.InvalidEnvelope.Code:     http.StatusBadRequest,
	errors.UnknownMessageType.Code:  http.StatusBadRequest,
	errors.InvalidRound.Code:        http.StatusBadRequest,
	errors.NodeIsFaulty.Code:        http.StatusInternalServerError,
	errors.NodeIsKilled.Code:        http.StatusGone,
	errors.AlreadyStarted.Code:      http.StatusConflict,
	errors.NotReady.Code:            http.StatusServiceUnavailable,
	errors.EndpointNotFound.Code:    http.StatusNotFound,
	errors.SupervisorClosed.Code:    http.StatusGone,
	errors.InvalidNodeIndex.Code:    http.StatusBadRequest,
	errors.InvalidInitialValue.Code: http.StatusBadRequest,
}

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
	}
	return http.StatusInternalServerError
}

// WriteJSON writes the value v to the http response as json encoding; HAL
// resources are written as `application/hal+json`.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	contentType := "application/json"
	if h, ok := v.(HALResource); ok {
		contentType = "application/hal+json"
		v = h.Resource()
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)

	_, err = w.Write(bs)
	return err
}

// WriteJSONError writes the error as json; errors other than `errors.Error`
// are written with their message only.
func WriteJSONError(w http.ResponseWriter, err error) {
	var v interface{} = err
	if _, ok := err.(*errors.Error); !ok {
		v = map[string]interface{}{"code": 0, "message": err.Error()}
	}

	WriteJSON(w, StatusCode(err), v)
}

func WriteText(w http.ResponseWriter, code int, body string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	_, err := w.Write([]byte(body))
	return err
}
