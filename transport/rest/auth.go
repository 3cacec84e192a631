package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiKeyParam = "api-key"

// apiKeyMiddleware rejects requests whose api-key query parameter is not in
// the static allow-list.
func apiKeyMiddleware(apiKeys []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(apiKeys))
	for _, key := range apiKeys {
		if key != "" {
			allowed[key] = struct{}{}
		}
	}

	return func(ctx *gin.Context) {
		key := ctx.Query(apiKeyParam)
		if _, ok := allowed[key]; key == "" || !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}

		ctx.Next()
	}
}
