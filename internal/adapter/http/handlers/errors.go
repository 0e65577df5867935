package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iPad7/gantt-4team/internal/adapter/http/middleware"
	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/pkg/apierrors"
)

// respondError maps domain errors to their HTTP status. Anything unexpected
// is logged and answered with 500 and fallbackMsg.
func respondError(c *gin.Context, err error, fallbackMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateFieldError(http.StatusBadRequest, apierrors.MsgInvalidField, validationErr.Field, lang),
		)
		return
	}

	var integrityErr *domain.IntegrityError
	if errors.As(err, &integrityErr) {
		msg := apierrors.MsgTaskHierarchyCycle
		if errors.Is(err, domain.ErrUsernameTaken) {
			msg = apierrors.MsgUsernameTaken
		}
		c.JSON(
			http.StatusConflict,
			apierrors.CreateFieldError(http.StatusConflict, msg, integrityErr.Field, lang),
		)
		return
	}

	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
		return
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgUserNotFound, lang))
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
		return
	}

	fields = append(fields, zap.String("message_id", fallbackMsg), zap.Error(err))
	zap.L().Error("request failed", fields...)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, fallbackMsg, lang),
	)
}

// parseID reads a positive numeric path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
		)
		return 0, false
	}
	return id, true
}
