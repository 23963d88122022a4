package server

import "errors"

// errNoServersAreCreated means the config enabled no transport at all.
var errNoServersAreCreated = errors.New("no servers are created")
