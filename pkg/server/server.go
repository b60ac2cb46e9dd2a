// Package server exposes artifact generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-paramgen/pkg/artifact"
	"github.com/goliatone/go-paramgen/pkg/orchestrator"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
	"github.com/goliatone/go-paramgen/pkg/validation"
	"github.com/goliatone/go-paramgen/pkg/visibility"
)

// maxRequestBytes caps request bodies.
const maxRequestBytes = 8 << 20

// Config holds server configuration.
type Config struct {
	Addr         string
	Orchestrator *orchestrator.Orchestrator
	Validation   validation.Options
	// Logger receives request and error logs; nil uses log.Default().
	Logger *log.Logger
}

// Handler serves the generation API.
type Handler struct {
	orchestrator *orchestrator.Orchestrator
	validation   validation.Options
	logger       *log.Logger
}

// NewHandler builds a Handler. A nil orchestrator uses the defaults.
func NewHandler(o *orchestrator.Orchestrator, logger *log.Logger) *Handler {
	if o == nil {
		o = orchestrator.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{orchestrator: o, logger: logger}
}

// Router returns the chi router with every route registered.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: h.logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/operations", h.ListOperations)
		r.Post("/generate", h.Generate)
		r.Post("/generate/{operation}", h.GenerateOperation)
		r.Post("/validate", h.Validate)
		r.Post("/preview/{operation}", h.Preview)
	})
	return r
}

// GenerateRequest is the body accepted by the generation endpoints.
type GenerateRequest struct {
	// Document is the raw descriptor module or OpenAPI document.
	Document string              `json:"document"`
	Format   orchestrator.Format `json:"format,omitempty"`
	Subset   artifact.Subset     `json:"subset,omitempty"`
	// Values are form inputs used by the preview endpoint.
	Values map[string]any `json:"values,omitempty"`
}

// OperationSummary describes one operation of a document.
type OperationSummary struct {
	Name     string `json:"name"`
	ID       string `json:"id,omitempty"`
	Kind     string `json:"kind"`
	Accessor string `json:"accessor,omitempty"`
	Path     string `json:"path,omitempty"`
	Doc      string `json:"doc,omitempty"`
}

// ListOperations returns the operations declared by the posted document.
func (h *Handler) ListOperations(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	module, ok := h.module(w, r, req)
	if !ok {
		return
	}
	out := make([]OperationSummary, 0, len(module.Operations))
	for _, op := range module.Operations {
		out = append(out, OperationSummary{
			Name:     op.Name,
			ID:       op.ID,
			Kind:     string(op.Kind),
			Accessor: op.Accessor,
			Path:     artifact.FormatPath(op.Path),
			Doc:      op.Doc,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"module": module.Name, "operations": out})
}

// Generate returns the artifact bundle for the posted document.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	h.generate(w, r, req)
}

// GenerateOperation generates a single operation selected by name or id.
func (h *Handler) GenerateOperation(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	req.Subset = artifact.Subset{Operations: []string{chi.URLParam(r, "operation")}}
	h.generate(w, r, req)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req GenerateRequest) {
	bundle, ok := h.bundle(w, r, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *Handler) bundle(w http.ResponseWriter, r *http.Request, req GenerateRequest) (artifact.Bundle, bool) {
	module, ok := h.module(w, r, req)
	if !ok {
		return artifact.Bundle{}, false
	}
	if missing := req.Subset.Unmatched(module.Operations); len(missing) > 0 {
		names := artifact.OperationNames(module.Operations)
		suggestions := map[string][]string{}
		for _, name := range missing {
			suggestions[name] = artifact.Suggest(name, names)
		}
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":       "unknown operations",
			"code":        "UNKNOWN_OPERATION",
			"suggestions": suggestions,
		})
		return artifact.Bundle{}, false
	}
	module.Operations = req.Subset.Apply(module.Operations)

	bundle, err := h.orchestrator.Generate(r.Context(), orchestrator.Request{Module: &module})
	if err != nil {
		h.fail(w, err, "GENERATION_FAILED")
		return artifact.Bundle{}, false
	}
	return bundle, true
}

// Validate lints the posted document. Invalid modules still answer 200 with
// valid set to false.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	module, ok := h.module(w, r, req)
	if !ok {
		return
	}
	module.Operations = req.Subset.Apply(module.Operations)
	result, err := validation.ValidateModule(r.Context(), module, h.validation)
	if err != nil {
		h.fail(w, err, "VALIDATION_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Preview generates one operation and reports which of its form elements are
// enabled for the posted values.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	operation := chi.URLParam(r, "operation")
	req.Subset = artifact.Subset{Operations: []string{operation}}
	bundle, ok := h.bundle(w, r, req)
	if !ok {
		return
	}
	if len(bundle.Artifacts) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "SKIPPED_OPERATION", "operation "+operation+" was skipped")
		return
	}
	a := bundle.Artifacts[0]
	enabled, err := visibility.Enabled(a.Form, req.Values, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_CONDITION", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    a.Name,
		"form":    a.Form,
		"enabled": enabled,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (GenerateRequest, bool) {
	var req GenerateRequest
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body: "+err.Error())
		return GenerateRequest{}, false
	}
	if req.Document == "" {
		writeError(w, http.StatusBadRequest, "MISSING_DOCUMENT", "document is required")
		return GenerateRequest{}, false
	}
	return req, true
}

func (h *Handler) module(w http.ResponseWriter, r *http.Request, req GenerateRequest) (typedesc.Module, bool) {
	doc, err := typedesc.NewDocument(typedesc.SourceFromFS("request.body"), []byte(req.Document))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DOCUMENT", err.Error())
		return typedesc.Module{}, false
	}
	module, err := h.orchestrator.Module(r.Context(), orchestrator.Request{Document: &doc, Format: req.Format})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_DOCUMENT", err.Error())
		return typedesc.Module{}, false
	}
	return module, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, code string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "CANCELLED", err.Error())
		return
	}
	h.logger.Printf("server: %s: %v", code, err)
	writeError(w, http.StatusInternalServerError, code, err.Error())
}

// Run serves the API until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	handler := NewHandler(cfg.Orchestrator, cfg.Logger)
	handler.validation = cfg.Validation
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	handler.logger.Printf("starting server on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}
