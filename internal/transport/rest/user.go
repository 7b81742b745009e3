package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Текущий пользователь
// @Description Возвращает данные аутентифицированного пользователя
// @Tags Пользователи
// @Produce json
// @Success 200 {object} domain.User "Данные пользователя"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Обновить профиль
// @Description Обновляет данные текущего пользователя
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param input body domain.UpdateUserDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Профиль обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /users/me [put]
func (h *Handler) updateCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	// Флаг активности меняет только администратор.
	req.IsActive = nil

	if err := h.services.User.Update(c.Request.Context(), userID, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "профиль обновлен")
}

// @Summary Сменить пароль
// @Description Меняет пароль текущего пользователя
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param input body domain.PasswordUpdateDTO true "Старый и новый пароли"
// @Success 200 {object} messageResponseType "Пароль обновлен"
// @Failure 400 {object} errorResponseBody "Неверный текущий пароль"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /users/me/password [put]
func (h *Handler) updatePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.PasswordUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.User.UpdatePassword(c.Request.Context(), userID, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "пароль обновлен")
}

// @Summary Список пользователей
// @Description Возвращает список пользователей. Только для администраторов
// @Tags Пользователи
// @Produce json
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.User "Список пользователей"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) getUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, err := h.services.User.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("ошибка получения списка пользователей", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, users)
}

// @Summary Пользователь по ID
// @Description Возвращает данные пользователя. Только для администраторов
// @Tags Пользователи
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} domain.User "Данные пользователя"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Деактивировать пользователя
// @Description Деактивирует аккаунт пользователя. Только для администраторов
// @Tags Пользователи
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} messageResponseType "Пользователь деактивирован"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) deactivateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.User.Deactivate(c.Request.Context(), id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "пользователь деактивирован")
}
