package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/pkg/logger"
	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
)

// respondError переводит ошибку сервиса в HTTP статус
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "validation_error", Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "conflict", Message: err.Error()})
	case errors.Is(err, service.ErrEmptyResult):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "empty_result", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "unauthorized", Message: err.Error()})
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "internal_error", Message: "internal server error"})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "bad_request", Message: message})
}

// parseID читает положительный целочисленный параметр пути
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON разбирает тело запроса; при ошибке уже отправлен ответ 400
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, "Invalid request body")
		return false
	}
	return true
}
