/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.schemas.ListTables(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) dropTable(w http.ResponseWriter, r *http.Request) {
	tableName := chi.URLParam(r, "tableName")
	if err := h.schemas.DropTable(r.Context(), tableName); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Table %s deleted successfully.", tableName)})
}
