package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"medbook/internal/domain"
)

func TestDomainErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ошибка валидации", domain.NewValidationError("диагноз не может быть пустым"), http.StatusBadRequest},
		{"конфликт", domain.NewConflictError("выбранный слот времени уже занят"), http.StatusConflict},
		{"недопустимый переход", domain.NewInvalidTransitionError("недопустимый переход статуса: completed -> cancelled"), http.StatusConflict},
		{"нет прав", domain.NewAuthorizationError("нет прав на просмотр этого приема"), http.StatusForbidden},
		{"не найдено", domain.NewNotFoundError("прием не найден"), http.StatusNotFound},
		{"неизвестная ошибка", errors.New("ошибка базы данных"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			domainErrorResponse(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestDomainErrorResponse_HidesInternalMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	domainErrorResponse(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
