/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"net/http"

	daerrors "github.com/suparena/dynadmin/errors"
)

// httpStatusFromError maps the error taxonomy to HTTP status codes.
// Unknown errors return 500 Internal Server Error.
func httpStatusFromError(err error) int {
	switch {
	case daerrors.IsValidationError(err):
		return http.StatusBadRequest
	case daerrors.IsNotFound(err), daerrors.IsSchemaNotFound(err), daerrors.IsTableNotFound(err):
		return http.StatusNotFound
	case daerrors.IsAlreadyExists(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
