package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/middleware"
)

// pathID parses a uuid path parameter. An id that cannot exist is reported as
// a missing entity.
func pathID(c *gin.Context, param, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": entity + " not found"})
		return uuid.Nil, false
	}
	return id, true
}

// requireUser returns the authenticated identity. Routes behind
// AuthMiddleware always have one.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}
