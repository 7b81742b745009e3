package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

const maxAttachmentSize = 10 << 20

// @Summary Создать медицинскую запись
// @Description Создает запись в медицинской карте пациента. Доступно врачам
// @Tags Медкарта
// @Accept json
// @Produce json
// @Param input body domain.CreateMedicalRecordDTO true "Данные записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /medical-records [post]
func (h *Handler) createMedicalRecord(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateMedicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Record.Create(c.Request.Context(), identity, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Медицинская запись по ID
// @Description Возвращает запись, если вызывающий имеет к ней доступ
// @Tags Медкарта
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.MedicalRecord "Медицинская запись"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /medical-records/{id} [get]
func (h *Handler) getMedicalRecordByID(c *gin.Context) {
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

	record, err := h.services.Record.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, record)
}

// @Summary Список медицинских записей
// @Description Возвращает записи, доступные вызывающему по его роли
// @Tags Медкарта
// @Produce json
// @Param patient_id query int false "ID пациента (только для администраторов)"
// @Param limit query int false "Количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.MedicalRecord "Список записей"
// @Security ApiKeyAuth
// @Router /medical-records [get]
func (h *Handler) getMedicalRecords(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var patientID *int64
	if s := c.Query("patient_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат ID пациента")
			return
		}
		patientID = &id
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.MedicalRecordFilter{
		PatientID: patientID,
		Limit:     limit,
		Offset:    offset,
	}

	records, err := h.services.Record.List(c.Request.Context(), identity, filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, records)
}

// @Summary Обновить медицинскую запись
// @Description Полностью перезаписывает поля записи. Доступно автору и администратору
// @Tags Медкарта
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateMedicalRecordDTO true "Новые значения полей"
// @Success 200 {object} messageResponseType "Запись обновлена"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /medical-records/{id} [put]
func (h *Handler) updateMedicalRecord(c *gin.Context) {
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

	var req domain.UpdateMedicalRecordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Record.Update(c.Request.Context(), identity, id, req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "запись обновлена")
}

// @Summary Загрузить вложение
// @Description Загружает файл к медицинской записи и сохраняет его URL
// @Tags Медкарта
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID записи"
// @Param file formData file true "Файл (изображение или PDF)"
// @Success 200 {object} map[string]interface{} "URL загруженного файла"
// @Failure 400 {object} errorResponseBody "Файл отсутствует или недопустим"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /medical-records/{id}/attachments [post]
func (h *Handler) uploadRecordAttachment(c *gin.Context) {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "файл не передан")
		return
	}

	if fileHeader.Size > maxAttachmentSize {
		badRequestResponse(c, "файл слишком большой")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("ошибка открытия файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	url, err := h.services.Record.UploadAttachment(c.Request.Context(), identity, id, data, fileHeader.Filename)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"url": url})
}
