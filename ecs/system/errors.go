package system

import "errors"

// ErrNoPlayer is the panic value when a step runs without a player entity.
var ErrNoPlayer = errors.New("system: no player entity")
