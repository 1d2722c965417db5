package module

import "errors"

var (
	ErrNilHandler     = errors.New("handler is nil")
	ErrInvalidPattern = errors.New("invalid route pattern")
	ErrInvalidPrefix  = errors.New("mount prefix must begin with /")
	ErrRouteConflict  = errors.New("conflicting routes")
	ErrRouterBuilt    = errors.New("router already built")
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrNoBody         = errors.New("route does not bind a request body")
)
