/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suparena/dynadmin/registry"
	"github.com/suparena/dynadmin/schema"
)

type registerSchemaResponse struct {
	Message string              `json:"message"`
	Schema  schema.SchemaRecord `json:"schema"`
}

func (h *Handler) registerSchema(w http.ResponseWriter, r *http.Request) {
	var def schema.Definition
	if err := decodeJSON(r, &def); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	rec, err := h.schemas.Register(r.Context(), def)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerSchemaResponse{
		Message: "Schema registered successfully",
		Schema:  rec,
	})
}

func (h *Handler) listSchemas(w http.ResponseWriter, r *http.Request) {
	recs, err := h.schemas.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) getSchema(w http.ResponseWriter, r *http.Request) {
	rec, err := h.schemas.Get(r.Context(), chi.URLParam(r, "identifier"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) updateSchema(w http.ResponseWriter, r *http.Request) {
	var upd registry.Update
	if err := decodeJSON(r, &upd); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if _, err := h.schemas.Update(r.Context(), chi.URLParam(r, "tableName"), upd); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Schema updated successfully"})
}

func (h *Handler) deleteSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.schemas.Delete(r.Context(), chi.URLParam(r, "tableName")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Schema deleted successfully"})
}

type renameFieldRequest struct {
	TableName    string `json:"tableName"`
	OldFieldName string `json:"oldFieldName"`
	NewFieldName string `json:"newFieldName"`
}

type phaseResponse struct {
	ItemsRewritten int    `json:"itemsRewritten"`
	Error          string `json:"error,omitempty"`
}

type renameFieldResponse struct {
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	Data    phaseResponse `json:"data"`
	Schema  phaseResponse `json:"schema"`
}

func toPhaseResponse(p registry.PhaseResult) phaseResponse {
	resp := phaseResponse{ItemsRewritten: p.ItemsRewritten}
	if p.Err != nil {
		resp.Error = p.Err.Error()
	}
	return resp
}

func (h *Handler) renameField(w http.ResponseWriter, r *http.Request) {
	var req renameFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	outcome, err := h.schemas.RenameField(r.Context(), req.TableName, req.OldFieldName, req.NewFieldName)
	resp := renameFieldResponse{
		Data:   toPhaseResponse(outcome.Data),
		Schema: toPhaseResponse(outcome.Schema),
	}
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, httpStatusFromError(err), resp)
		return
	}
	resp.Message = "Field '" + req.OldFieldName + "' renamed to '" + req.NewFieldName +
		"' in table '" + req.TableName + "' and its schema."
	writeJSON(w, http.StatusOK, resp)
}
