package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("login and password must not be empty")
	ErrLoginTooLong       = errors.New("login is too long")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("wrong password")
	ErrTooManyAttempts    = errors.New("too many sign in attempts")

	ErrInvalidToken        = errors.New("token is expired or invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")
)

var (
	ErrCardNotFound        = errors.New("card not found")
	ErrNotCardOwner        = errors.New("current user is not owner of the card")
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrInvalidAction       = errors.New("invalid action")
	ErrCardNotAvailable    = errors.New("card is not available")
	ErrBalanceTooHigh      = errors.New("balance is too high")
	ErrNotEnoughBalance    = errors.New("not enough balance")
	ErrSameCard            = errors.New("cards of a transfer must differ")
	ErrInvalidStatus       = errors.New("invalid card status")
	ErrInvalidMonths       = errors.New("months quantity must be positive")
	ErrStatusRequestExists = errors.New("status update request already exists")
	ErrCardNumberExhausted = errors.New("too many attempts to generate card number")
	ErrInvalidFilter       = errors.New("invalid filter")
)

var (
	ErrInvalidMasterKey = errors.New("invalid card master key")
	ErrInvalidHMACKey   = errors.New("invalid card hmac key")
	ErrInvalidJWTSecret = errors.New("invalid jwt secret")
)
