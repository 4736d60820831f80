package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/service"
)

// respondError renders any service failure as the structured
// {"title": ...} body. Unknown error types never leak details to the
// client; they become a generic 500.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		body := gin.H{"title": svcErr.Title}
		if len(svcErr.Fields) > 0 {
			body["errors"] = svcErr.Fields
		}
		c.JSON(svcErr.Status, body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"title": "Error al procesar la solicitud."})
}
