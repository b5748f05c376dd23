package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

const actorKey = "actor"

// Authenticate resolves the Bearer token to an actor and stores it on the
// request context. Requests without a valid token are rejected before any
// handler runs.
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
			return
		}
		actor, err := parseToken(token, h.Cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// actorFrom returns the authenticated actor placed by Authenticate.
func actorFrom(c *gin.Context) models.Actor {
	v, _ := c.Get(actorKey)
	actor, _ := v.(models.Actor)
	return actor
}
