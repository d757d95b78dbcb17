// Package middleware holds cross-origin request handling for the API.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gianpd/summarizerAI/pkg/config"
)

// DefaultAllowedOrigins are the local front-end dev servers.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:12000",
	"http://localhost:12001",
}

// CORSConfig holds the cross-origin policy.
type CORSConfig struct {
	// AllowedOrigins is an exact-match whitelist; "*" allows any origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is how long browsers may cache a preflight, in seconds.
	MaxAge int
	Logger *slog.Logger
}

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE (comma-separated lists).
func LoadCORSConfig() (CORSConfig, error) {
	cfg := CORSConfig{
		AllowedOrigins: config.GetEnvStringList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		AllowedMethods: config.GetEnvStringList("CORS_ALLOWED_METHODS",
			[]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: config.GetEnvStringList("CORS_ALLOWED_HEADERS",
			[]string{"Content-Type", "Authorization", "X-Request-ID"}),
		MaxAge: config.GetEnvInt("CORS_MAX_AGE", 86400),
	}
	return cfg, cfg.Validate()
}

// Validate checks that every origin is "*" or a bare scheme://host[:port].
func (c CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("cors: at least one allowed origin is required")
	}
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("cors: invalid origin %q", origin)
		}
		if strings.TrimSuffix(u.Path, "/") != "" || u.RawQuery != "" || u.Fragment != "" {
			return fmt.Errorf("cors: origin %q must not contain a path", origin)
		}
	}
	if err := config.ValidateIntRange(c.MaxAge, 0, 86400); err != nil {
		return fmt.Errorf("cors: max age: %w", err)
	}
	return nil
}

type originSet struct {
	any     bool
	origins map[string]struct{}
}

func newOriginSet(origins []string) originSet {
	s := originSet{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if o == "*" {
			s.any = true
			continue
		}
		if n := normalizeOrigin(o); n != "" {
			s.origins[n] = struct{}{}
		}
	}
	return s
}

func (s originSet) allowed(origin string) bool {
	if s.any {
		return true
	}
	_, ok := s.origins[normalizeOrigin(origin)]
	return ok
}

// normalizeOrigin lowercases and strips a trailing slash.
func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// CORS returns middleware applying cfg.
// Requests without an Origin header pass through untouched. Disallowed origins
// get no CORS headers and the browser blocks the response. Preflight requests
// from allowed origins are answered with 204 without reaching next.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowed := newOriginSet(cfg.AllowedOrigins)
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !allowed.allowed(origin) {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			// Echo the origin rather than "*" so credentials keep working.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				logger.Debug("CORS: preflight request",
					slog.String("origin", origin),
					slog.String("requested_method", r.Header.Get("Access-Control-Request-Method")))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
