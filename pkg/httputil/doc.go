// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding/decoding, error
// responses, path parameter parsing, and common HTTP middleware.
//
// Responses:
//
//	httputil.WriteSuccess(w, data)
//	httputil.WriteBadRequest(w, "invalid input")
//
// Request parsing:
//
//	var req ValidateRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // error response already written
//	}
//	name, ok := httputil.ParsePathStringOrError(w, r, "name")
//
// Middleware:
//
//	httputil.Chain(
//		httputil.RecoveryMiddleware(log),
//		httputil.LoggingMiddleware(log, metrics),
//	)
package httputil
