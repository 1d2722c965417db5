package demo

import (
	"net/http"

	"github.com/JaimeStill/autoroute/pkg/handlers"
	"github.com/JaimeStill/autoroute/pkg/module"
	"github.com/JaimeStill/autoroute/pkg/routes"
)

// Groups contributed by hand keep their mount prefix; the declared path is
// joined beneath it.
func init() {
	info, err := module.Declare(
		http.MethodGet, "/info", handleInfo,
		module.Format("json"),
		module.Summary("Service information"),
		module.Tags("api"),
	)
	if err != nil {
		panic(err)
	}

	routes.Contribute(routes.Group{
		Mount: "/api",
		Routes: func() []module.Route {
			return []module.Route{info}
		},
	})
}

func handleInfo(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"name": "autoroute"})
}
