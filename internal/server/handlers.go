package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/shared"
)

// Importer runs one input string through the import pipeline.
type Importer interface {
	Import(ctx context.Context, input string) (*models.ImportResult, error)
}

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}

// statusFor maps pipeline errors onto HTTP status codes. Input problems and
// empty extractions are the client's 400; everything that escapes the
// per-item guards is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrEmptyInput),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrUnsupportedURL),
		errors.Is(err, shared.ErrUnrecognizedImport),
		errors.Is(err, shared.ErrNoTracksExtracted),
		errors.Is(err, shared.ErrPlaylistNotFound),
		errors.Is(err, shared.ErrTrackNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ImportHandler serves the import endpoint.
type ImportHandler struct {
	engine Importer
	logger *log.Logger
}

// NewImportHandler creates an ImportHandler backed by the given engine.
func NewImportHandler(engine Importer, logger *log.Logger) *ImportHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ImportHandler{engine: engine, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ImportHandler) Routes() []string {
	return []string{"/api/import-playlist"}
}

// ServeHTTP handles POST /api/import-playlist.
//
// The body is {"url": "<input>"}; the input may be a playlist URL, an item
// URL, or a pasted text list. Every response is a well-formed JSON body:
// the uniform import result on 200, {"error": ...} otherwise.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be JSON with a url field")
		return
	}

	result, err := h.engine.Import(r.Context(), body.URL)
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			h.logger.Error("import failed", "err", err)
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// SearchHandler serves the plain catalog search endpoint.
type SearchHandler struct {
	engine Importer
	logger *log.Logger
}

// NewSearchHandler creates a SearchHandler backed by the given engine.
func NewSearchHandler(engine Importer, logger *log.Logger) *SearchHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SearchHandler{engine: engine, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"/api/search"}
}

// ServeHTTP handles GET /api/search?q=. The query runs through the same
// dispatch chain as imports, so a pasted URL behaves identically on both
// endpoints.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	result, err := h.engine.Import(r.Context(), q)
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			h.logger.Error("search failed", "err", err)
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HealthHandler reports service liveness.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/api/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewRouter assembles the service router with the standard middleware stack
// and all API handlers registered.
func NewRouter(engine Importer, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(RequestLogger(logger), Recovery(logger), CORS())
	router.Handler(NewImportHandler(engine, logger))
	router.Handler(NewSearchHandler(engine, logger))
	router.Handler(&HealthHandler{})

	return router
}
