/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	daerrors "github.com/suparena/dynadmin/errors"
	"github.com/suparena/dynadmin/schema"
)

type addItemResponse struct {
	Message   string `json:"message"`
	ID        any    `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// addItem validates the body against the schema registered for tableName,
// when there is one, and inserts it into tableName. The body carries
// tableName alongside the record attributes. Aliases are not resolved, so
// every /items route addresses the same physical table.
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	tableName, _ := body["tableName"].(string)
	if tableName == "" {
		writeBadRequest(w, "tableName is required")
		return
	}
	delete(body, "tableName")

	rec, err := h.schemas.GetByTableName(r.Context(), tableName)
	switch {
	case err == nil:
		body = schema.ApplyDefaults(rec, body)
		if err := schema.Validate(rec, body); err != nil {
			h.writeError(w, r, err)
			return
		}
	case daerrors.IsSchemaNotFound(err):
		// Tables without a schema accept any shape.
	default:
		h.writeError(w, r, err)
		return
	}

	res, err := h.records.AddItem(r.Context(), tableName, body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	msg := "Item added successfully"
	if res.Duplicate {
		msg = "Duplicate item found, insertion skipped"
	}
	writeJSON(w, http.StatusOK, addItemResponse{
		Message:   msg,
		ID:        res.Item["id"],
		Duplicate: res.Duplicate,
	})
}

func (h *Handler) getItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.records.GetItems(r.Context(), chi.URLParam(r, "tableName"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// itemID parses the {id} path parameter.
func itemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		writeBadRequest(w, "id must be an integer")
		return
	}
	item, err := h.records.GetItem(r.Context(), chi.URLParam(r, "tableName"), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		writeBadRequest(w, "id must be an integer")
		return
	}
	var updates map[string]any
	if err := decodeJSON(r, &updates); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.records.UpdateItem(r.Context(), chi.URLParam(r, "tableName"), id, updates); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Item updated successfully"})
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		writeBadRequest(w, "id must be an integer")
		return
	}
	if err := h.records.DeleteItem(r.Context(), chi.URLParam(r, "tableName"), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Item deleted successfully"})
}
