// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// resolveLanguage picks the first preference of an Accept-Language header,
// e.g. "es-MX,es;q=0.9,en;q=0.8".
func resolveLanguage(header string) string {
	if header == "" {
		return "en"
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	if i := strings.IndexAny(first, "-_"); i >= 0 {
		first = first[:i]
	}

	switch strings.ToLower(first) {
	case "es":
		return "es"
	default:
		return "en"
	}
}
