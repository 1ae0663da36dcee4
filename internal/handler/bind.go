package handler

import (
	"context"
	"net/http"

	"heart-matching-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type resolveFunc func(ctx context.Context, applicationID, responseNote string) (*models.ApplicationView, error)

// bindOptionalJSON binds a JSON body when one is present. An empty body leaves dst unchanged.
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}
