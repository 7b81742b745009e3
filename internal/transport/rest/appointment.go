package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Записаться на прием
// @Description Создает запись на прием к врачу. Доступно пациентам
// @Tags Приемы
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные приема"
// @Success 201 {object} map[string]interface{} "ID созданного приема"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или прием в прошлом"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Выбранное время уже занято"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), identity, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Прием по ID
// @Description Возвращает прием, если вызывающий имеет к нему доступ
// @Tags Приемы
// @Produce json
// @Param id path int true "ID приема"
// @Success 200 {object} domain.Appointment "Данные приема"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Прием не найден"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
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

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Список приемов
// @Description Возвращает приемы вызывающего с фильтрами по статусу и датам
// @Tags Приемы
// @Produce json
// @Param status query string false "Статус приема"
// @Param date_from query string false "Начальная дата (ГГГГ-ММ-ДД)"
// @Param date_to query string false "Конечная дата (ГГГГ-ММ-ДД)"
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse "Список приемов"
// @Failure 400 {object} errorResponseBody "Недопустимый статус"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var status *domain.AppointmentStatus
	if s := c.Query("status"); s != "" {
		appStatus := domain.AppointmentStatus(s)
		status = &appStatus
	}

	var startDate *time.Time
	if s := c.Query("date_from"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			startDate = &parsed
		}
	}

	var endDate *time.Time
	if s := c.Query("date_to"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			endDate = &parsed
		}
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.AppointmentFilter{
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     limit,
		Offset:    offset,
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), identity, filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Предстоящие приемы
// @Description Возвращает активные приемы начиная с сегодняшнего дня, от ближайшего к дальнему
// @Tags Приемы
// @Produce json
// @Success 200 {array} domain.Appointment "Предстоящие приемы"
// @Security ApiKeyAuth
// @Router /appointments/upcoming [get]
func (h *Handler) getUpcomingAppointments(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	appointments, err := h.services.Appointment.ListUpcoming(c.Request.Context(), identity)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointments)
}

// @Summary Статистика приемов
// @Description Возвращает количество приемов вызывающего по статусам
// @Tags Приемы
// @Produce json
// @Success 200 {object} domain.AppointmentStats "Статистика"
// @Security ApiKeyAuth
// @Router /appointments/stats [get]
func (h *Handler) getAppointmentStats(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	stats, err := h.services.Appointment.Stats(c.Request.Context(), identity)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, stats)
}

// @Summary Подтвердить прием
// @Description Переводит прием из ожидания в подтвержденный. Доступно врачу и администратору
// @Tags Приемы
// @Produce json
// @Param id path int true "ID приема"
// @Success 200 {object} domain.Appointment "Обновленный прием"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Прием не найден"
// @Failure 409 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/confirm [post]
func (h *Handler) confirmAppointment(c *gin.Context) {
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

	appointment, err := h.services.Appointment.Confirm(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Завершить прием
// @Description Переводит прием в завершенный с необязательными заметками врача
// @Tags Приемы
// @Accept json
// @Produce json
// @Param id path int true "ID приема"
// @Param input body domain.CompleteAppointmentDTO false "Заметки врача"
// @Success 200 {object} domain.Appointment "Обновленный прием"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Прием не найден"
// @Failure 409 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/complete [post]
func (h *Handler) completeAppointment(c *gin.Context) {
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

	var req domain.CompleteAppointmentDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestResponse(c, "неверный формат данных")
			return
		}
	}

	appointment, err := h.services.Appointment.Complete(c.Request.Context(), identity, id, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Отменить прием
// @Description Отменяет прием. Доступно пациенту-владельцу, врачу и администратору
// @Tags Приемы
// @Produce json
// @Param id path int true "ID приема"
// @Success 200 {object} domain.Appointment "Обновленный прием"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Прием не найден"
// @Failure 409 {object} errorResponseBody "Прием уже завершен или отменен"
// @Security ApiKeyAuth
// @Router /appointments/{id}/cancel [post]
func (h *Handler) cancelAppointment(c *gin.Context) {
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

	appointment, err := h.services.Appointment.Cancel(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}
