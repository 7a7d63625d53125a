package serve

import (
	"encoding/json"
	"errors"
	"net/http"

	"listql/internal/listspec"
	"listql/internal/pager"
	"listql/internal/plan"
	"listql/internal/schema"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// errQueryFailed hides database details from response bodies; the underlying
// error is logged server-side.
var errQueryFailed = errors.New("query execution failed")

type listResponse struct {
	Status  string      `json:"status"`
	Results listResults `json:"results"`
}

type listResults struct {
	Data     []map[string]any  `json:"data"`
	PageInfo pager.PageInfo    `json:"page_info"`
	Schema   map[string]string `json:"schema"`
}

type singleResponse struct {
	Status  string        `json:"status"`
	Results singleResults `json:"results"`
}

type singleResults struct {
	Data   map[string]any    `json:"data"`
	Schema map[string]string `json:"schema"`
	ID     string            `json:"id"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// schemaDescriptor renders a schema's fields as a name-to-type map for
// response metadata.
func schemaDescriptor(s schema.Schema) map[string]string {
	fields := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		fields[f.Name] = string(f.Type)
	}
	return fields
}

// statusForError maps interpretation errors to HTTP statuses. Errors caused by
// request input are 400; everything else points at server configuration and
// is 500.
func statusForError(err error) int {
	var nullCmp *plan.InvalidNullComparisonError
	var sortTok *listspec.MalformedSortTokenError
	if errors.As(err, &nullCmp) || errors.As(err, &sortTok) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorKind labels an interpretation error for metrics.
func errorKind(err error) string {
	var (
		unknownAssoc *schema.UnknownAssociationError
		cyclicAssoc  *schema.CyclicAssociationError
		unknownField *schema.UnknownFieldError
		depth        *plan.UnsupportedDepthError
		nullCmp      *plan.InvalidNullComparisonError
		unknownOp    *plan.UnknownOperatorError
		sortTok      *listspec.MalformedSortTokenError
		dupKey       *listspec.DuplicateKeyError
		computed     *listspec.ComputedDefaultError
	)
	switch {
	case errors.As(err, &unknownAssoc):
		return "unknown_association"
	case errors.As(err, &cyclicAssoc):
		return "cyclic_association"
	case errors.As(err, &unknownField):
		return "unknown_field"
	case errors.As(err, &depth):
		return "unsupported_depth"
	case errors.As(err, &nullCmp):
		return "invalid_null_comparison"
	case errors.As(err, &unknownOp):
		return "unknown_operator"
	case errors.As(err, &sortTok):
		return "malformed_sort_token"
	case errors.As(err, &dupKey):
		return "duplicate_key"
	case errors.As(err, &computed):
		return "computed_default"
	default:
		return "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Status: statusError, Error: err.Error()})
}
