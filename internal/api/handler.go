/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package api exposes the schema registry and the record store over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/dynadmin"
	"github.com/suparena/dynadmin/internal/middleware"
	"github.com/suparena/dynadmin/records"
	"github.com/suparena/dynadmin/registry"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the admin API.
type Handler struct {
	schemas *registry.Manager
	records *records.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler creates a Handler.
func NewHandler(schemas *registry.Manager, recs *records.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		schemas: schemas,
		records: recs,
		logger:  logger,
		now:     time.Now,
	}
}

// RouterConfig configures the middleware stack.
type RouterConfig struct {
	AllowedOrigins []string
	// RateLimit is disabled when RequestsPerSecond is zero.
	RateLimit middleware.RateLimitConfig
}

// Routes builds the chi router with every endpoint mounted.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if cfg.RateLimit.RequestsPerSecond > 0 {
		r.Use(middleware.RateLimiter(cfg.RateLimit))
	}

	r.Get("/health", h.health)

	r.Route("/schema", func(r chi.Router) {
		r.Post("/", h.registerSchema)
		r.Get("/", h.listSchemas)
		r.Get("/{identifier}", h.getSchema)
		r.Put("/{tableName}", h.updateSchema)
		r.Delete("/{tableName}", h.deleteSchema)
	})

	r.Route("/table", func(r chi.Router) {
		r.Get("/", h.listTables)
		r.Delete("/{tableName}", h.dropTable)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", h.addItem)
		r.Get("/{tableName}", h.getItems)
		r.Get("/{tableName}/{id}", h.getItem)
		r.Put("/{tableName}/{id}", h.updateItem)
		r.Delete("/{tableName}/{id}", h.deleteItem)
	})

	r.Put("/field", h.renameField)

	return r
}

type healthResponse struct {
	Status    string          `json:"status"`
	Timestamp strfmt.DateTime `json:"timestamp"`
	Version   string          `json:"version"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: strfmt.DateTime(h.now().UTC()),
		Version:   dynadmin.GetVersionInfo().Version,
	})
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes {"error": "..."}.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromError(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
