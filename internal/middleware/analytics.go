package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/univenta/retail_ledger_app/internal/utils/analytics"
)

// untrackedPaths contains paths that should never produce tracking events.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// EventTrackingMiddleware emits one PostHog event per successful mutation,
// attributed to the acting user. Reads and failed requests are not tracked.
func EventTrackingMiddleware(client *analytics.ClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Event name from the route template, e.g.
		// POST /api/v1/expenses/:id/pay -> "api_v1_expenses_id_pay".
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, ":", "")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		client.Enqueue(GetActorIDFromContext(c), eventName, props)
	}
}
