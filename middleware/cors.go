package middleware

import (
	"strings"
	"time"

	"vehicle-forecast-api/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsHeaders = []string{"Origin", "Content-Type", "Accept"}
)

// SetupCORS allows every origin for "*" (or an empty setting), otherwise only
// the comma-separated list.
func SetupCORS(cfg config.CORSConfig) gin.HandlerFunc {
	origins := ParseOrigins(cfg.AllowedOrigins)

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    corsMethods,
			AllowHeaders:    corsHeaders,
			ExposeHeaders:   []string{"Content-Length"},
			MaxAge:          12 * time.Hour,
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func ParseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
