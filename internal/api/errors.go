package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/plenario/internal/core/fault"
)

// statusFor maps a failure kind onto an HTTP status.
func statusFor(kind fault.Kind) int {
	switch kind {
	case fault.Validation:
		return http.StatusBadRequest
	case fault.NotFound:
		return http.StatusNotFound
	case fault.InvalidState, fault.InvalidTransition, fault.AlreadyPublished, fault.NotVoting:
		return http.StatusConflict
	case fault.QuorumNotMet, fault.OpinionPending, fault.InCommittee, fault.NotPresent:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := fault.KindOf(err)
	status := statusFor(kind)
	body := errorBody{Error: string(kind), Message: err.Error()}

	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		body = errorBody{Error: "internal", Message: "internal error"}
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into v. Malformed bodies are validation failures.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			return fault.New(fault.Validation, "malformed JSON at offset %d", syntax.Offset)
		}
		return fault.New(fault.Validation, "invalid request body: %v", err)
	}
	return nil
}
