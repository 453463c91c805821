package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/httpresp"
	"github.com/BruksfildServices01/studio-console/internal/models"
	ucSchedule "github.com/BruksfildServices01/studio-console/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	placeUC       *ucSchedule.PlaceShift
	deleteUC      *ucSchedule.DeleteShift
	monthViewUC   *ucSchedule.MonthView
	requestSwapUC *ucSchedule.RequestSwap
	resolveSwapUC *ucSchedule.ResolveSwap
}

func NewScheduleHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	placeUC *ucSchedule.PlaceShift,
	deleteUC *ucSchedule.DeleteShift,
	monthViewUC *ucSchedule.MonthView,
	requestSwapUC *ucSchedule.RequestSwap,
	resolveSwapUC *ucSchedule.ResolveSwap,
) *ScheduleHandler {
	return &ScheduleHandler{
		db:            db,
		audit:         auditDispatcher,
		placeUC:       placeUC,
		deleteUC:      deleteUC,
		monthViewUC:   monthViewUC,
		requestSwapUC: requestSwapUC,
		resolveSwapUC: resolveSwapUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PlaceShiftRequest struct {
	StaffID    uint   `json:"staff_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	TemplateID *uint  `json:"template_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	ShiftType  string `json:"shift_type"`
	Color      string `json:"color"`
	LocationID *uint  `json:"location_id"`
}

type ResolveSwapRequest struct {
	Accept     bool `json:"accept"`
	NewStaffID uint `json:"new_staff_id"`
}

type CreateTemplateRequest struct {
	Name      string `json:"name" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	ShiftType string `json:"shift_type"`
	Color     string `json:"color"`
}

type UpdateTemplateRequest struct {
	Name      *string `json:"name,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	ShiftType *string `json:"shift_type,omitempty"`
	Color     *string `json:"color,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// ======================================================
// SHIFTS
// ======================================================

func (h *ScheduleHandler) PlaceShift(c *gin.Context) {
	var req PlaceShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry, err := h.placeUC.Execute(c.Request.Context(), ucSchedule.PlaceShiftInput{
		StaffID:    req.StaffID,
		Date:       req.Date,
		TemplateID: req.TemplateID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ShiftType:  req.ShiftType,
		Color:      req.Color,
		LocationID: req.LocationID,
		By:         actingUser(c),
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.Created(c, entry)
}

func (h *ScheduleHandler) DeleteShift(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	entry, err := h.deleteUC.Execute(c.Request.Context(), id, actingUser(c))
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *ScheduleHandler) MonthView(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "validation_error", "Ano e mês obrigatórios.")
		return
	}

	staffID, _ := strconv.ParseUint(c.Query("staff_id"), 10, 64)

	view, err := h.monthViewUC.Execute(c.Request.Context(), uint(staffID), year, month)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, view)
}

// ListEntries devolve as entradas cruas de um intervalo, sem a montagem
// da grade mensal. Útil para exportações e visão semanal.
func (h *ScheduleHandler) ListEntries(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_params", "Intervalo obrigatório (from, to).")
		return
	}

	from, errF := time.Parse("2006-01-02", fromStr)
	to, errT := time.Parse("2006-01-02", toStr)
	if errF != nil || errT != nil || to.Before(from) {
		httperr.BadRequest(c, "validation_error", "Intervalo inválido.")
		return
	}

	q := h.db.
		Preload("StaffMember.User").
		Where("date >= ? AND date <= ?", from, to)

	if staffID, _ := strconv.ParseUint(c.Query("staff_id"), 10, 64); staffID > 0 {
		q = q.Where("staff_member_id = ?", staffID)
	}

	var entries []models.ScheduleEntry
	if err := q.Order("date ASC, start_time ASC").Find(&entries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_entries", "Erro ao listar turnos.")
		return
	}

	httpresp.List(c, entries)
}

// ======================================================
// SWAPS
// ======================================================

func (h *ScheduleHandler) RequestSwap(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	entry, err := h.requestSwapUC.Execute(c.Request.Context(), id, actingUser(c))
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *ScheduleHandler) ResolveSwap(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ResolveSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entry, err := h.resolveSwapUC.Execute(c.Request.Context(), ucSchedule.ResolveSwapInput{
		EntryID:    id,
		Accept:     req.Accept,
		NewStaffID: req.NewStaffID,
		By:         actingUser(c),
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

// ======================================================
// TEMPLATES
// ======================================================

func (h *ScheduleHandler) ListTemplates(c *gin.Context) {
	q := h.db.Model(&models.ShiftTemplate{})

	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	var templates []models.ShiftTemplate
	if err := q.Order("name ASC").Find(&templates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_templates", "Erro ao listar modelos de turno.")
		return
	}

	httpresp.List(c, templates)
}

func (h *ScheduleHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := domain.SpanMinutes(req.StartTime, req.EndTime); err != nil {
		respondBusinessError(c, err)
		return
	}

	tpl := models.ShiftTemplate{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ShiftType: req.ShiftType,
		Color:     req.Color,
		Active:    true,
	}
	if tpl.ShiftType == "" {
		tpl.ShiftType = "regular"
	}

	if err := h.db.Create(&tpl).Error; err != nil {
		httperr.Internal(c, "failed_to_create_template", "Erro ao criar modelo de turno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actingUser(c),
		Action:   "shift_template_created",
		Entity:   "shift_template",
		EntityID: &tpl.ID,
	})

	httpresp.Created(c, tpl)
}

func (h *ScheduleHandler) UpdateTemplate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var tpl models.ShiftTemplate
	if err := h.db.First(&tpl, id).Error; err != nil {
		httperr.NotFound(c, "template_not_found", "Modelo de turno não encontrado.")
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.StartTime != nil {
		tpl.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		tpl.EndTime = *req.EndTime
	}
	if req.ShiftType != nil {
		tpl.ShiftType = *req.ShiftType
	}
	if req.Color != nil {
		tpl.Color = *req.Color
	}
	if req.Active != nil {
		tpl.Active = *req.Active
	}

	if _, err := domain.SpanMinutes(tpl.StartTime, tpl.EndTime); err != nil {
		respondBusinessError(c, err)
		return
	}

	if err := h.db.Save(&tpl).Error; err != nil {
		httperr.Internal(c, "failed_to_update_template", "Erro ao atualizar modelo de turno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actingUser(c),
		Action:   "shift_template_updated",
		Entity:   "shift_template",
		EntityID: &tpl.ID,
	})

	httpresp.OK(c, tpl)
}
