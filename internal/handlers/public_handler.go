package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
	ucBooking "github.com/BruksfildServices01/studio-console/internal/usecase/booking"
	"github.com/BruksfildServices01/studio-console/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db   *gorm.DB
	repo domain.Repository

	createUC  *ucBooking.CreateAppointment
	availUC   *ucBooking.GetAvailability
	requestUC *ucBooking.RequestReschedule
	cancelUC  *ucBooking.CancelAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	createUC *ucBooking.CreateAppointment,
	availUC *ucBooking.GetAvailability,
	requestUC *ucBooking.RequestReschedule,
	cancelUC *ucBooking.CancelAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:        db,
		repo:      repo,
		createUC:  createUC,
		availUC:   availUC,
		requestUC: requestUC,
		cancelUC:  cancelUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	StaffID       uint   `json:"staff_id"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

type PublicRescheduleRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

type PublicCancelRequest struct {
	Reason string `json:"reason"`
}

// publicView expõe apenas o que o cliente precisa ver. Observações
// internas e dados de pagamento detalhados ficam de fora.
func publicView(ap *models.Appointment) gin.H {
	view := gin.H{
		"public_ref":     ap.PublicRef,
		"status":         ap.Status,
		"customer_name":  ap.CustomerName,
		"scheduled_at":   ap.ScheduledAt,
		"end_time":       ap.EndTime,
		"payment_status": ap.PaymentStatus,
	}

	if ap.Service.ID != 0 {
		view["service"] = gin.H{
			"name":         ap.Service.Name,
			"duration_min": ap.Service.DurationMin,
		}
	}

	if ap.StaffMember != nil && ap.StaffMember.User.ID != 0 {
		view["staff_name"] = ap.StaffMember.User.Name
	}

	return view
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = true")

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	staffIDStr := c.Query("staff_id")

	if dateStr == "" || serviceIDStr == "" || staffIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Profissional, serviço e data obrigatórios.")
		return
	}

	serviceID, errP := strconv.ParseUint(serviceIDStr, 10, 64)
	staffID, errS := strconv.ParseUint(staffIDStr, 10, 64)
	if errP != nil || errS != nil {
		httperr.BadRequest(c, "validation_error", "Parâmetros inválidos.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "Data inválida.")
		return
	}

	slots, err := h.availUC.Execute(c.Request.Context(), uint(staffID), uint(serviceID), date)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PUBLIC → REUSA PRIVATE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone, ok := validators.NormalizePhone(req.CustomerPhone)
	if !ok {
		httperr.BadRequest(c, "validation_error", "Telefone de contato inválido.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: phone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		Notify:        true,
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	view := publicView(result.Appointment)
	if result.Warning != "" {
		view["warning"] = result.Warning
	}

	c.JSON(http.StatusCreated, view)
}

////////////////////////////////////////////////////////
// SELF SERVICE (POR PUBLIC REF)
////////////////////////////////////////////////////////

func (h *PublicHandler) resolveRef(c *gin.Context) (*models.Appointment, bool) {
	ref := c.Param("ref")
	if ref == "" {
		httperr.BadRequest(c, "missing_params", "Referência obrigatória.")
		return nil, false
	}

	ap, err := h.repo.GetAppointmentByPublicRef(c.Request.Context(), ref)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return nil, false
	}

	return ap, true
}

func (h *PublicHandler) GetAppointment(c *gin.Context) {
	ap, ok := h.resolveRef(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, publicView(ap))
}

func (h *PublicHandler) RequestReschedule(c *gin.Context) {
	ap, ok := h.resolveRef(c)
	if !ok {
		return
	}

	var req PublicRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	request, err := h.requestUC.Execute(c.Request.Context(), ucBooking.RequestRescheduleInput{
		AppointmentID: ap.ID,
		Date:          req.Date,
		Time:          req.Time,
		Reason:        req.Reason,
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":      request.Status,
		"proposed_at": request.ProposedAt,
	})
}

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	ap, ok := h.resolveRef(c)
	if !ok {
		return
	}

	var req PublicCancelRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.cancelUC.Execute(c.Request.Context(), ucBooking.CancelAppointmentInput{
		AppointmentID: ap.ID,
		Reason:        req.Reason,
		SelfServe:     true,
		Notify:        true,
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	view := publicView(result.Appointment)
	view["refund"] = gin.H{
		"amount_cents":  result.Appointment.RefundAmountCents,
		"status":        result.Appointment.RefundStatus,
		"manual_review": result.Appointment.RefundManualReview,
	}
	if result.Warning != "" {
		view["warning"] = result.Warning
	}

	c.JSON(http.StatusOK, view)
}
