// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request decoding. Callers can match against them with
// [errors.Is]; all of them are rendered as 400 Bad Request.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidBody is returned when the JSON body cannot be decoded.
	ErrInvalidBody = errors.New("request body is missing or invalid")

	// ErrInvalidPathParameter is returned when a path segment is not a UUID.
	ErrInvalidPathParameter = errors.New("invalid path parameter")

	// ErrInvalidQueryParameter is returned when a query value has the wrong type.
	ErrInvalidQueryParameter = errors.New("invalid query parameter")
)
