package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Список врачей
// @Description Возвращает список врачей с фильтрацией по специализации и доступности
// @Tags Врачи
// @Produce json
// @Param specialization query string false "Специализация"
// @Param available_only query bool false "Только принимающие пациентов"
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список врачей"
// @Failure 400 {object} errorResponseBody "Недопустимая специализация"
// @Router /doctors [get]
func (h *Handler) getDoctors(c *gin.Context) {
	var specialization *domain.Specialization
	if s := c.Query("specialization"); s != "" {
		spec := domain.Specialization(s)
		specialization = &spec
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.DoctorFilter{
		Specialization: specialization,
		AvailableOnly:  c.Query("available_only") == "true",
		Limit:          limit,
		Offset:         offset,
	}

	doctors, total, err := h.services.Doctor.List(c.Request.Context(), filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, doctors, total, page, limit)
}

// @Summary Врач по ID
// @Description Возвращает профиль врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.DoctorProfile "Профиль врача"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id} [get]
func (h *Handler) getDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Мой профиль врача
// @Description Возвращает профиль врача текущего пользователя
// @Tags Врачи
// @Produce json
// @Success 200 {object} domain.DoctorProfile "Профиль врача"
// @Failure 404 {object} errorResponseBody "Профиль не найден"
// @Security ApiKeyAuth
// @Router /doctors/me [get]
func (h *Handler) getMyDoctorProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, doctor)
}

// @Summary Доступность врача
// @Description Возвращает объявленное расписание доступности врача
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} map[string]interface{} "Расписание доступности"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /doctors/{id}/availability [get]
func (h *Handler) getDoctorAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	doctor, err := h.services.Doctor.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, gin.H{
		"available_days":       doctor.AvailableDays,
		"available_time_start": doctor.AvailableTimeStart,
		"available_time_end":   doctor.AvailableTimeEnd,
		"is_available":         doctor.IsAvailable,
	})
}

// @Summary Обновить профиль врача
// @Description Обновляет профиль. Доступно самому врачу и администратору
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.UpdateDoctorProfileDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Профиль обновлен"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Security ApiKeyAuth
// @Router /doctors/{id} [put]
func (h *Handler) updateDoctor(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateDoctorProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Doctor.Update(c.Request.Context(), identity, id, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "профиль обновлен")
}

// @Summary Объявить доступность
// @Description Полностью заменяет дни и окно приема врача
// @Tags Врачи
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.DeclareAvailabilityDTO true "Дни недели и окно приема"
// @Success 200 {object} messageResponseType "Доступность обновлена"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /doctors/{id}/availability [put]
func (h *Handler) declareAvailability(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.DeclareAvailabilityDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Doctor.DeclareAvailability(c.Request.Context(), identity, id, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "доступность обновлена")
}
