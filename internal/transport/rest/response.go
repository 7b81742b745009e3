package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medbook/internal/domain"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type messageResponseType struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

// domainErrorResponse транслирует доменные ошибки в HTTP статусы.
// Неизвестные ошибки скрываются за 500.
func domainErrorResponse(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError
	var transitionErr *domain.InvalidTransitionError
	var authzErr *domain.AuthorizationError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		badRequestResponse(c, validationErr.Message)
	case errors.As(err, &conflictErr):
		errorResponse(c, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &transitionErr):
		errorResponse(c, http.StatusConflict, transitionErr.Message)
	case errors.As(err, &authzErr):
		forbiddenResponse(c, authzErr.Message)
	case errors.As(err, &notFoundErr):
		notFoundResponse(c, notFoundErr.Message)
	default:
		internalServerErrorResponse(c)
	}
}

func messageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageResponseType{
		Status:  "success",
		Message: message,
	})
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := totalCount / pageSize
	if totalCount%pageSize > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}
