package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Регистрация пациента
// @Description Создает нового пользователя с ролью пациента
// @Tags Аутентификация
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} map[string]interface{} "ID созданного пользователя"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Пользователь уже существует"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Auth.Register(c.Request.Context(), req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Регистрация врача
// @Description Создает пользователя с ролью врача и его профиль одним шагом
// @Tags Аутентификация
// @Accept json
// @Produce json
// @Param input body domain.RegisterDoctorRequest true "Данные для регистрации врача"
// @Success 201 {object} map[string]interface{} "ID созданного пользователя"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Пользователь или лицензия уже существуют"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /auth/register/doctor [post]
func (h *Handler) registerDoctor(c *gin.Context) {
	var req domain.RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Auth.RegisterDoctor(c.Request.Context(), req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Вход в систему
// @Description Аутентифицирует пользователя по email или телефону и возвращает пару токенов
// @Tags Аутентификация
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Логин и пароль"
// @Success 200 {object} domain.Tokens "Пара токенов"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Неверный логин или пароль"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	tokens, err := h.services.Auth.Login(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Обновление токенов
// @Description Обменивает refresh token на новую пару токенов
// @Tags Аутентификация
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} domain.Tokens "Новая пара токенов"
// @Failure 401 {object} errorResponseBody "Недействительный refresh token"
// @Router /auth/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	tokens, err := h.services.Auth.RefreshTokens(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Выход из системы
// @Description Удаляет сессию по refresh token
// @Tags Аутентификация
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} messageResponseType "Выход выполнен"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "выход выполнен")
}
