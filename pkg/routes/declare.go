package routes

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/autoroute/pkg/module"
)

// Get declares a GET route and contributes it to the process-wide registry.
func Get(path string, handler http.HandlerFunc, opts ...module.Option) module.Route {
	return defaultRegistry.Declare(http.MethodGet, path, handler, opts...)
}

// Post declares a POST route and contributes it to the process-wide registry.
func Post(path string, handler http.HandlerFunc, opts ...module.Option) module.Route {
	return defaultRegistry.Declare(http.MethodPost, path, handler, opts...)
}

// Put declares a PUT route and contributes it to the process-wide registry.
func Put(path string, handler http.HandlerFunc, opts ...module.Option) module.Route {
	return defaultRegistry.Declare(http.MethodPut, path, handler, opts...)
}

// Delete declares a DELETE route and contributes it to the process-wide registry.
func Delete(path string, handler http.HandlerFunc, opts ...module.Option) module.Route {
	return defaultRegistry.Declare(http.MethodDelete, path, handler, opts...)
}

// Patch declares a PATCH route and contributes it to the process-wide registry.
func Patch(path string, handler http.HandlerFunc, opts ...module.Option) module.Route {
	return defaultRegistry.Declare(http.MethodPatch, path, handler, opts...)
}

// Route declares a route matching every method and contributes it to the
// process-wide registry.
func Route(path string, handler http.HandlerFunc, opts ...module.Option) module.Route {
	return defaultRegistry.Declare(module.MethodAny, path, handler, opts...)
}

// Declare performs the native declaration and contributes the route as a
// single-route group mounted at "/". The declared path is authoritative.
//
// Declarations run during package initialization, so a route the framework
// rejects panics there and the program never starts with the route missing.
func (r *Registry) Declare(method, path string, handler http.HandlerFunc, opts ...module.Option) module.Route {
	route, err := module.Declare(method, path, handler, opts...)
	if err != nil {
		panic(fmt.Sprintf("routes: invalid declaration: %v", err))
	}

	r.Contribute(Group{
		Mount: "/",
		Routes: func() []module.Route {
			return []module.Route{route}
		},
	})

	return route
}
