package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Создать слот времени
// @Description Создает слот приема. Доступно врачам и администраторам
// @Tags Слоты
// @Accept json
// @Produce json
// @Param input body domain.CreateTimeSlotDTO true "Данные слота"
// @Success 201 {object} map[string]interface{} "ID созданного слота"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Слот уже существует"
// @Security ApiKeyAuth
// @Router /time-slots [post]
func (h *Handler) createTimeSlot(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateTimeSlotDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.TimeSlot.Create(c.Request.Context(), identity, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Список слотов
// @Description Возвращает слоты с фильтрацией по врачу, дате и доступности
// @Tags Слоты
// @Produce json
// @Param doctor_id query int false "ID врача"
// @Param date query string false "Дата (ГГГГ-ММ-ДД)"
// @Param available_only query bool false "Только свободные будущие слоты"
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.TimeSlot "Список слотов"
// @Router /time-slots [get]
func (h *Handler) getTimeSlots(c *gin.Context) {
	var doctorID *int64
	if s := c.Query("doctor_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат ID врача")
			return
		}
		doctorID = &id
	}

	var date *time.Time
	if s := c.Query("date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			badRequestResponse(c, "неверный формат даты")
			return
		}
		date = &parsed
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.TimeSlotFilter{
		DoctorID:      doctorID,
		Date:          date,
		AvailableOnly: c.DefaultQuery("available_only", "true") == "true",
		Limit:         limit,
		Offset:        offset,
	}

	slots, err := h.services.TimeSlot.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка получения слотов", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Слот по ID
// @Description Возвращает слот времени
// @Tags Слоты
// @Produce json
// @Param id path int true "ID слота"
// @Success 200 {object} domain.TimeSlot "Слот"
// @Failure 404 {object} errorResponseBody "Слот не найден"
// @Router /time-slots/{id} [get]
func (h *Handler) getTimeSlotByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	slot, err := h.services.TimeSlot.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, slot)
}
