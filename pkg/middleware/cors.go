package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig contains Cross-Origin Resource Sharing configuration.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled" env:"ENABLED"`
	Origins          []string `toml:"origins" env:"ORIGINS"`
	AllowedMethods   []string `toml:"allowed_methods" env:"ALLOWED_METHODS"`
	AllowedHeaders   []string `toml:"allowed_headers" env:"ALLOWED_HEADERS"`
	AllowCredentials bool     `toml:"allow_credentials" env:"ALLOW_CREDENTIALS"`
	MaxAge           int      `toml:"max_age" env:"MAX_AGE"`
}

// Finalize applies defaults to the CORS configuration.
func (c *CORSConfig) Finalize() error {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type", "Accept", "Authorization", RequestIDHeader}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
	return nil
}

// Merge applies values from overlay configuration. Boolean fields can only be
// switched on by an overlay.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.AllowCredentials {
		c.AllowCredentials = true
	}
	if overlay.Origins != nil {
		c.Origins = overlay.Origins
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

// CORS sets cross-origin headers for allowed origins and answers preflight
// requests. It is a pass-through when disabled or when no origins are set.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || len(cfg.Origins) == 0 {
			return next
		}

		methods := strings.Join(cfg.AllowedMethods, ", ")
		headers := strings.Join(cfg.AllowedHeaders, ", ")
		maxAge := strconv.Itoa(cfg.MaxAge)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !(slices.Contains(cfg.Origins, "*") || slices.Contains(cfg.Origins, origin)) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
