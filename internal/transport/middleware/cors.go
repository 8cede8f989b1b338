package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/cors"

	"github.com/heartmarshall/insight-backend/internal/config"
)

var exposedHeaders = []string{"Content-Disposition", "X-Request-Id"}

// CORS wraps go-chi/cors. A "*" entry allows any origin; the request origin
// is echoed instead of "*" so credentialed requests keep working.
func CORS(cfg config.CORSConfig) Middleware {
	opts := cors.Options{
		AllowedMethods:   splitList(cfg.AllowedMethods),
		AllowedHeaders:   splitList(cfg.AllowedHeaders),
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	origins := splitList(cfg.AllowedOrigins)
	if slices.Contains(origins, "*") {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}

	return cors.Handler(opts)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
