package module

import (
	"mime"
	"net/http"
	"strings"
)

var formatShorthands = map[string]string{
	"json":      "application/json",
	"xml":       "application/xml",
	"html":      "text/html",
	"plain":     "text/plain",
	"text":      "text/plain",
	"form":      "application/x-www-form-urlencoded",
	"multipart": "multipart/form-data",
	"msgpack":   "application/msgpack",
	"binary":    "application/octet-stream",
}

// MediaType expands a format shorthand into its media type. Values that
// already contain a slash are returned lower-cased and otherwise unchanged.
func MediaType(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if mt, ok := formatShorthands[format]; ok {
		return mt
	}
	return format
}

// negotiate rejects requests whose payload or accepted types do not match
// the route format. Requests that carry a body are checked on Content-Type,
// all others on Accept.
func negotiate(format string, next http.HandlerFunc) http.HandlerFunc {
	want := MediaType(format)
	return func(w http.ResponseWriter, r *http.Request) {
		if carriesBody(r.Method) {
			got, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || !mediaMatches(want, got) {
				http.Error(w, http.StatusText(http.StatusUnsupportedMediaType), http.StatusUnsupportedMediaType)
				return
			}
		} else if !accepts(r.Header.Get("Accept"), want) {
			http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
			return
		}
		next(w, r)
	}
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func accepts(header, want string) bool {
	if strings.TrimSpace(header) == "" {
		return true
	}

	for _, part := range strings.Split(header, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if q, ok := params["q"]; ok && strings.Trim(q, "0.") == "" {
			continue
		}
		if mt == "*/*" || mediaMatches(mt, want) || mediaMatches(want, mt) {
			return true
		}
	}
	return false
}

func mediaMatches(pattern, mt string) bool {
	if pattern == mt {
		return true
	}
	prefix, ok := strings.CutSuffix(pattern, "/*")
	return ok && strings.HasPrefix(mt, prefix+"/")
}
