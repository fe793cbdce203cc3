package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/service"
)

var statusByKind = map[service.Kind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindForbidden:    http.StatusForbidden,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
}

// respondError writes err as {"message": ...} with the status for its kind.
// Internal errors are logged and answered with a generic message.
func respondError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"message": service.MessageOf(err)})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
