package models

import "errors"

// Balance rule violations reported by [Card.CanApply].
var (
	ErrBalanceTooHigh   = errors.New("balance is too high")
	ErrNotEnoughBalance = errors.New("not enough balance")
)
