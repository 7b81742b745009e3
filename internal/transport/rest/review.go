package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

// @Summary Оставить отзыв
// @Description Создает отзыв на завершенный прием. Доступно пациентам
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param input body domain.CreateReviewDTO true "Данные отзыва"
// @Success 201 {object} map[string]interface{} "ID созданного отзыва"
// @Failure 400 {object} errorResponseBody "Прием не завершен или не принадлежит пациенту"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Отзыв на этот прием уже оставлен"
// @Security ApiKeyAuth
// @Router /reviews [post]
func (h *Handler) createReview(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Review.Create(c.Request.Context(), identity, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Отзыв по ID
// @Description Возвращает отзыв
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID отзыва"
// @Success 200 {object} domain.Review "Отзыв"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Router /reviews/{id} [get]
func (h *Handler) getReviewByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	review, err := h.services.Review.GetByID(c.Request.Context(), id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, review)
}

// @Summary Обновить отзыв
// @Description Меняет оценку или комментарий. Доступно автору отзыва
// @Tags Отзывы
// @Accept json
// @Produce json
// @Param id path int true "ID отзыва"
// @Param input body domain.UpdateReviewDTO true "Изменяемые поля"
// @Success 200 {object} messageResponseType "Отзыв обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Отзыв не найден"
// @Security ApiKeyAuth
// @Router /reviews/{id} [put]
func (h *Handler) updateReview(c *gin.Context) {
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

	var req domain.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Review.Update(c.Request.Context(), identity, id, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "отзыв обновлен")
}

// @Summary Мои отзывы
// @Description Возвращает отзывы вызывающего
// @Tags Отзывы
// @Produce json
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.Review "Список отзывов"
// @Security ApiKeyAuth
// @Router /reviews [get]
func (h *Handler) getReviews(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	reviews, err := h.services.Review.List(c.Request.Context(), identity, domain.ReviewFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, reviews)
}

// @Summary Отзывы о враче
// @Description Возвращает отзывы о враче
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID врача"
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.Review "Список отзывов"
// @Router /reviews/doctor/{id} [get]
func (h *Handler) getDoctorReviews(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	// Публичный список отзывов о враче, идентичность не требуется.
	reviews, err := h.services.Review.List(c.Request.Context(), domain.Identity{Role: domain.UserRoleAdmin}, domain.ReviewFilter{
		DoctorID: &doctorID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, reviews)
}

// @Summary Статистика отзывов о враче
// @Description Возвращает количество отзывов, средний рейтинг и распределение оценок
// @Tags Отзывы
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.DoctorReviewStats "Статистика отзывов"
// @Router /reviews/doctor/{id}/stats [get]
func (h *Handler) getDoctorReviewStats(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	stats, err := h.services.Review.DoctorStats(c.Request.Context(), doctorID)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, stats)
}
