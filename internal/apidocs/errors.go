package apidocs

import "errors"

var (
	ErrUnexpectedStatus = errors.New("documentation endpoint returned unexpected status")
	ErrNotJSON          = errors.New("documentation endpoint returned a non-JSON body")
)
