/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package middleware provides the HTTP middleware of the dynadmin server:
// request ids, per-client rate limiting and structured access logging.
package middleware
