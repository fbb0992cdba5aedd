package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// ProblemDetail is an RFC 7807 problem response.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ProblemDetail{Title: title, Status: status, Detail: detail})
}

// writeError maps an engine error kind to a problem response. Internal
// causes are never sent to the caller.
func writeError(w http.ResponseWriter, err error) {
	switch common.KindOf(err) {
	case common.KindValidation:
		writeProblem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case common.KindUnauthorized:
		w.Header().Set("WWW-Authenticate", `Bearer realm="authkeeper"`)
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case common.KindConflict:
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
