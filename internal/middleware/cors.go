package middleware

import (
	"net/http"

	"travel-crm/internal/config"

	"github.com/rs/cors"
)

// NewCORS builds the CORS handler from config. With no configured origins it
// falls back to a wildcard without credentials so a locally served frontend
// still works. Content-Disposition is exposed so browsers can read the
// filename on invoice PDF and report XLSX downloads.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.Server.CorsAllowedOrigins
	credentials := true
	if len(origins) == 0 {
		origins = []string{"*"}
		credentials = false
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: credentials,
		MaxAge:           300, // 5 minutes
	})

	return c.Handler
}
