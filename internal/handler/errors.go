package handler

import "errors"

// errNoHandlersAreCreated stops startup when neither transport has an address.
var errNoHandlersAreCreated = errors.New("no handlers are created")
