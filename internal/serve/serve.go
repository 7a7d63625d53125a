// Package serve exposes configured resources over HTTP: a query endpoint per
// resource for filtered, sorted, paginated lists, and a primary-key lookup
// endpoint for single records.
package serve

import (
	"net/http"

	"listql/internal/dbexec"
	"listql/internal/listspec"
	"listql/internal/logging"
	"listql/internal/middleware"
	"listql/internal/observability"
	"listql/internal/schema"

	"github.com/jinzhu/inflection"
)

// Endpoint is one queryable resource: its base schema plus the filter and
// sort capabilities it exposes.
type Endpoint struct {
	Base    schema.Schema
	Filters []listspec.FilterSpec
	Sorts   []listspec.SortSpec
}

// Resource is the route segment for the endpoint, the pluralized schema name.
func (e Endpoint) Resource() string {
	return inflection.Plural(e.Base.Name)
}

// Server handles the HTTP surface for all configured endpoints.
type Server struct {
	interp       *listspec.Interpreter
	runner       *dbexec.Runner
	metrics      *observability.Metrics
	logger       *logging.Logger
	defaultLimit int
	maxLimit     int
}

// NewServer creates a server over the given interpreter and runner.
func NewServer(interp *listspec.Interpreter, runner *dbexec.Runner, metrics *observability.Metrics, logger *logging.Logger, defaultLimit, maxLimit int) *Server {
	return &Server{
		interp:       interp,
		runner:       runner,
		metrics:      metrics,
		logger:       logger,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Handler builds the route table for the given endpoints. Each resource gets
// POST /{resource}/query for lists and GET /{resource}/{id} for lookups.
func (s *Server) Handler(endpoints []Endpoint) http.Handler {
	mux := http.NewServeMux()

	for _, ep := range endpoints {
		resource := ep.Resource()
		chain := func(h http.Handler) http.Handler {
			return middleware.Logging(s.logger)(middleware.Metrics(s.metrics, resource)(h))
		}
		mux.Handle("POST /"+resource+"/query", chain(s.listHandler(ep)))
		mux.Handle("GET /"+resource+"/{id}", chain(s.getHandler(ep)))
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
