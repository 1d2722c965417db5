// Package demo declares a small set of routes through directives. Importing
// it for side effects contributes them to the process-wide registry.
package demo

import (
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/autoroute/pkg/handlers"
	"github.com/JaimeStill/autoroute/pkg/module"
)

//go:generate go run github.com/JaimeStill/autoroute/cmd/routegen -quiet

// User is the payload accepted and returned by the user routes.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

var users = struct {
	sync.RWMutex
	byID map[string]User
}{byID: make(map[string]User)}

//route:get
func handleIndex(w http.ResponseWriter, r *http.Request) {
	handlers.RespondText(w, http.StatusOK, "autoroute")
}

//route:get "/a"
func handleA(w http.ResponseWriter, r *http.Request) {
	handlers.RespondText(w, http.StatusOK, "a")
}

//route:post "/b", data = "<x>"
func handleB(w http.ResponseWriter, r *http.Request) {
	body, _ := module.Body(r)
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"param": module.BodyParam(r),
		"bytes": len(body),
	})
}

//route:any "/c"
func handleC(w http.ResponseWriter, r *http.Request) {
	handlers.RespondText(w, http.StatusOK, r.Method)
}

//route:get "/users/<id>", format = "json", summary = "Fetch a user", tags = "users"
func handleGetUser(w http.ResponseWriter, r *http.Request) {
	users.RLock()
	user, ok := users.byID[r.PathValue("id")]
	users.RUnlock()

	if !ok {
		handlers.RespondJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	handlers.RespondJSON(w, http.StatusOK, user)
}

//route:put "/users/<id>", data = "<user>", format = "json", tags = "users"
func handlePutUser(w http.ResponseWriter, r *http.Request) {
	var user User
	if err := module.BindJSON(r, &user); err != nil {
		handlers.RespondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	user.ID = r.PathValue("id")

	users.Lock()
	users.byID[user.ID] = user
	users.Unlock()

	handlers.RespondJSON(w, http.StatusOK, user)
}

//route:delete "/users/<id>", tags = "users"
func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	users.Lock()
	delete(users.byID, r.PathValue("id"))
	users.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

//route:get "/files/<path..>", rank = 1
func handleFile(w http.ResponseWriter, r *http.Request) {
	handlers.RespondText(w, http.StatusOK, strings.TrimPrefix(r.PathValue("path"), "/"))
}
