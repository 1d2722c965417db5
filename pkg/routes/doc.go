// Package routes lets handlers be declared anywhere in a module and collected
// into one server at startup.
//
// Each declaration contributes a Group to a process-wide Registry while the
// declaring package initializes:
//
//	var _ = routes.Get("/users/{id}", getUser)
//
//	func init() {
//		routes.Post("/users", createUser, module.Data("<user>"))
//	}
//
// The routegen command generates these calls from //route: directives so
// handlers only carry an annotation. BuildServer then drains the registry
// exactly once, mounting every group onto a module.Router.
//
// Groups are enumerated in contribution order. Within a file that is
// declaration order; across packages it follows Go's package initialization
// order and should not be relied upon. Precedence between overlapping routes
// is decided by rank, never by registration order.
package routes
