package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// NotFoundOrSPA handles every unmatched route. Non-API GET and HEAD requests
// get the static asset at that path or the SPA entry document; everything
// else is a JSON 404.
func NotFoundOrSPA(staticDir string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")

	return func(c *gin.Context) {
		method := c.Request.Method
		urlPath := c.Request.URL.Path

		if (method == http.MethodGet || method == http.MethodHead) && !isAPIPath(urlPath) {
			if asset, ok := staticAsset(staticDir, urlPath); ok {
				c.File(asset)
				return
			}
			if isFile(index) {
				c.File(index)
				return
			}
		}

		c.JSON(http.StatusNotFound, gin.H{"msg": "Not Found"})
	}
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

func staticAsset(staticDir, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(staticDir, filepath.FromSlash(clean))
	return full, isFile(full)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
