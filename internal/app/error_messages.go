// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-bank-cards server handlers and middleware.
//
// All Msg* constants are human-readable message strings written into the
// "message" field of JSON error bodies. Keeping them in one place ensures
// consistent wording throughout the API.
package app

const (
	// MsgInvalidBody is returned when the request body, a path parameter or
	// a query parameter cannot be decoded.
	MsgInvalidBody = "Request body is missing or invalid"

	// MsgUnauthorized is returned when a protected route is called without a
	// valid bearer token.
	MsgUnauthorized = "Unauthorized"

	// MsgAccessDenied is returned when the caller lacks the ADMIN role or
	// touches a card of another user.
	MsgAccessDenied = "Access Denied"

	// MsgInternalError is returned for every unexpected server-side failure.
	MsgInternalError = "Internal error"

	MsgMethodNotAllowed = "Method not allowed"
	MsgRouteNotFound    = "Route not found"

	MsgUserNotFound   = "User not found"
	MsgCardNotFound   = "Card not found"
	MsgWrongPassword  = "Wrong password"
	MsgInvalidLogin   = "Login and password must not be empty"
	MsgLoginTooLong   = "Login is too long"
	MsgPasswordLong   = "Password is too long"
	MsgLoginExists    = "Login already exists"
	MsgTooManyLogins  = "Too many sign in attempts"
	MsgNegativeAmount = "Amount cannot be negative"

	MsgCardNotAvailable = "Card is not available"
	MsgBalanceTooHigh   = "Balance is too high"
	MsgNotEnoughBalance = "Not enough balance"
	MsgSameCard         = "Cannot transfer to the same card"
	MsgInvalidAction    = "Unknown balance action"
	MsgInvalidStatus    = "Unknown card status"
	MsgInvalidMonths    = "Months until expiration must be positive"
	MsgInvalidFilter    = "Invalid filter"

	// MsgStatusRequestExists is returned when the card already has a
	// pending status update request.
	MsgStatusRequestExists = "Status update is already requested"
)
