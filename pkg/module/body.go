package module

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

type bodyKey struct{}

type payload struct {
	param string
	data  []byte
}

// Body returns the request body buffered for a route declared with Data.
func Body(r *http.Request) ([]byte, bool) {
	p, ok := r.Context().Value(bodyKey{}).(*payload)
	if !ok {
		return nil, false
	}
	return p.data, true
}

// BodyParam returns the parameter name the route bound the body to.
func BodyParam(r *http.Request) string {
	if p, ok := r.Context().Value(bodyKey{}).(*payload); ok {
		return p.param
	}
	return ""
}

// BindJSON decodes the buffered request body into v.
func BindJSON(r *http.Request, v any) error {
	data, ok := Body(r)
	if !ok {
		return ErrNoBody
	}
	return sonic.Unmarshal(data, v)
}

// bindBody reads the request body up to limit bytes before the handler runs.
// A limit of zero or less disables the cap.
func bindBody(param string, limit int64, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reader io.Reader = r.Body
		if limit > 0 {
			reader = http.MaxBytesReader(w, r.Body, limit)
		}

		data, err := io.ReadAll(reader)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				http.Error(w, ErrBodyTooLarge.Error(), http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), bodyKey{}, &payload{param: param, data: data})
		r = r.WithContext(ctx)
		r.Body = io.NopCloser(bytes.NewReader(data))

		next(w, r)
	}
}
