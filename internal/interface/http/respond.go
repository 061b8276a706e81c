package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/pkg/response"
)

// respondError maps a service failure onto the HTTP error taxonomy:
// validation errors carry the full ordered message list, not-found is
// a bare 404, and anything else is a retryable 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	if verrs, ok := domain.AsValidation(err); ok {
		response.Error[any](c, http.StatusUnprocessableEntity, "validation failed", []string(verrs))
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		response.Error[any](c, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), nil)
		return
	}
	if logger != nil {
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error[any](c, http.StatusInternalServerError, "Please try again later.", nil)
}
