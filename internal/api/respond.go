package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/kintree/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		// Internal details stay in the log.
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorBody{
		Error:     msg,
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

func errNotFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}
