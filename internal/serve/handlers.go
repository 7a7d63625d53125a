package serve

import (
	"encoding/json"
	"fmt"
	"net/http"

	"listql/internal/listspec"
	"listql/internal/logging"
	"listql/internal/pager"
)

// listRequest is the body of a query endpoint call. All fields are optional;
// an empty body yields the endpoint's defaults and first page.
type listRequest struct {
	Filters map[string]any `json:"filters"`
	Sort    []string       `json:"sort"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

func (s *Server) listHandler(ep Endpoint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx)

		var req listRequest
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		p, err := s.interp.Interpret(ctx, ep.Base, ep.Filters, ep.Sorts, listspec.Request{
			Filters: req.Filters,
			Sort:    req.Sort,
		})
		if err != nil {
			s.metrics.PlanFailuresTotal.WithLabelValues(errorKind(err)).Inc()
			logger.WarnContext(ctx, "plan interpretation failed",
				"resource", ep.Resource(), "error", err)
			writeError(w, statusForError(err), err)
			return
		}
		s.metrics.PlansBuilt.Inc()

		limit, offset := pager.Clamp(req.Limit, req.Offset, s.defaultLimit, s.maxLimit)

		total, err := s.runner.Count(ctx, p)
		if err != nil {
			logger.ErrorContext(ctx, "count query failed", "resource", ep.Resource(), "error", err)
			writeError(w, http.StatusInternalServerError, errQueryFailed)
			return
		}
		docs, err := s.runner.List(ctx, p, limit, offset)
		if err != nil {
			logger.ErrorContext(ctx, "list query failed", "resource", ep.Resource(), "error", err)
			writeError(w, http.StatusInternalServerError, errQueryFailed)
			return
		}

		writeJSON(w, http.StatusOK, listResponse{
			Status: statusOK,
			Results: listResults{
				Data:     docs,
				PageInfo: pager.Paginate(limit, offset, total),
				Schema:   schemaDescriptor(ep.Base),
			},
		})
	})
}

func (s *Server) getHandler(ep Endpoint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")

		doc, err := s.runner.Get(ctx, ep.Base, id)
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "lookup query failed",
				"resource", ep.Resource(), "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, errQueryFailed)
			return
		}
		if doc == nil {
			writeError(w, http.StatusNotFound, fmt.Errorf("%s %q not found", ep.Base.Name, id))
			return
		}

		writeJSON(w, http.StatusOK, singleResponse{
			Status: statusOK,
			Results: singleResults{
				Data:   doc,
				Schema: schemaDescriptor(ep.Base),
				ID:     id,
			},
		})
	})
}
