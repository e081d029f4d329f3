package api

import (
	"errors"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondServiceError maps a service-layer error onto an HTTP status.
// Unrecognized errors are logged server-side and surfaced as a plain 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, domain.ErrIndexOutOfRange):
		abortWithError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrLinkNotFound),
		errors.Is(err, service.ErrTargetSetNotFound),
		errors.Is(err, service.ErrSetRecordNotFound),
		errors.Is(err, service.ErrNoDemoVideo):
		abortWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrExerciseNameTaken),
		errors.Is(err, service.ErrExerciseInUse),
		errors.Is(err, service.ErrTemplateCategoryLocked):
		abortWithError(c, http.StatusConflict, err.Error())

	default:
		log.WithError(err).Error("unhandled service error")
		abortWithError(c, http.StatusInternalServerError, "internal server error")
	}
}
