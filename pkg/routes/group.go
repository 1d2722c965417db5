package routes

import "github.com/JaimeStill/autoroute/pkg/module"

// Group is a batch of routes contributed under a common mount prefix.
// Routes is invoked by the builder, not at contribution time, so route values
// may depend on state that is only ready once the server is assembled.
type Group struct {
	Mount  string
	Routes func() []module.Route
}

func (g Group) produce() []module.Route {
	if g.Routes == nil {
		return nil
	}
	return g.Routes()
}
