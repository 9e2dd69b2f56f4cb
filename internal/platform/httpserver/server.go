package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	recommendationservice "chancery/contexts/awards-program/recommendation-service"
	"chancery/contexts/awards-program/recommendation-service/application/queries"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	recommendationhttp "chancery/contexts/awards-program/recommendation-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "chancery/internal/platform/httpserver/docs"
)

type Server struct {
	mux             *http.ServeMux
	logger          *slog.Logger
	addr            string
	recommendations recommendationservice.Module
}

func New(
	recommendations recommendationservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:             http.NewServeMux(),
		logger:          logger,
		addr:            addr,
		recommendations: recommendations,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /awards/recommendations", s.handleListRecommendations)
	s.mux.HandleFunc("POST /awards/recommendations", s.handleSubmitRecommendation)
	s.mux.HandleFunc("GET /awards/recommendations/board", s.handleBoard)
	s.mux.HandleFunc("GET /awards/recommendations/export", s.handleExport)
	s.mux.HandleFunc("POST /awards/recommendations/update-states", s.handleBulkUpdateStates)
	s.mux.HandleFunc("GET /awards/recommendations/{recommendation_id}", s.handleGetRecommendation)
	s.mux.HandleFunc("PUT /awards/recommendations/{recommendation_id}", s.handleUpdateRecommendation)
	s.mux.HandleFunc("DELETE /awards/recommendations/{recommendation_id}", s.handleDeleteRecommendation)
	s.mux.HandleFunc("POST /awards/recommendations/{recommendation_id}/kanban", s.handleKanban)
}

func (s *Server) handleSubmitRecommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendationhttp.SubmitRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	resp, err := s.recommendations.Handler.SubmitRecommendationHandler(r.Context(), actorID(r), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.recommendations.Handler.ListRecommendationsHandler(r.Context(), actorID(r), queryParams(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.recommendations.Handler.GetRecommendationHandler(r.Context(), actorID(r), r.PathValue("recommendation_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendationhttp.UpdateRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	resp, err := s.recommendations.Handler.UpdateRecommendationHandler(r.Context(), actorID(r), r.PathValue("recommendation_id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteRecommendation(w http.ResponseWriter, r *http.Request) {
	if err := s.recommendations.Handler.DeleteRecommendationHandler(r.Context(), actorID(r), r.PathValue("recommendation_id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkUpdateStates(w http.ResponseWriter, r *http.Request) {
	var req recommendationhttp.BulkUpdateStatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	resp, err := s.recommendations.Handler.BulkUpdateStatesHandler(r.Context(), actorID(r), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleKanban(w http.ResponseWriter, r *http.Request) {
	var req recommendationhttp.KanbanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	if err := s.recommendations.Handler.KanbanHandler(r.Context(), actorID(r), r.PathValue("recommendation_id"), req); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	showHidden := parseBool(r.URL.Query().Get("show_hidden"))
	resp, err := s.recommendations.Handler.BoardHandler(r.Context(), actorID(r), showHidden)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resp, err := s.recommendations.Handler.ExportHandler(r.Context(), actorID(r), queryParams(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// actorID identifies the caller. Authentication happens upstream; the
// gateway forwards the authenticated principal in a header.
func actorID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

// queryParams flattens the request query for the filter composer. Repeated
// keys resolve to the first value.
func queryParams(r *http.Request) queries.MapParams {
	query := r.URL.Query()
	params := make(queries.MapParams, len(query))
	for key := range query {
		params[key] = query.Get(key)
	}
	return params
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrRecommendationNotFound):
		writeError(w, http.StatusNotFound, "recommendation_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidRecommendationInput):
		writeError(w, http.StatusBadRequest, "invalid_recommendation_input", err.Error())
	case errors.Is(err, domainerrors.ErrUnknownState):
		writeError(w, http.StatusBadRequest, "unknown_state", err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domainerrors.ErrUpdateAborted):
		writeError(w, http.StatusConflict, "update_aborted", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, recommendationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
