// Package routegen turns //route: directives on handler functions into
// route declarations inside a generated init function.
//
// A directive sits in the doc comment of a top-level function:
//
//	//route:get "/users/<id>"
//	//route:post "/users", data = "<body>", format = "json"
//	//route:any
//	func handler(w http.ResponseWriter, r *http.Request)
//
// The method is one of get, post, put, delete, patch, or any. The first
// argument, when present, must be a string literal path; an empty argument
// list declares "/". Each following argument is key = expr and becomes the
// option module.<Key>(expr) without interpreting expr.
package routegen
