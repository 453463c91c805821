package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/httpresp"
	"github.com/BruksfildServices01/studio-console/internal/middleware"
	"github.com/BruksfildServices01/studio-console/internal/models"
	ucBooking "github.com/BruksfildServices01/studio-console/internal/usecase/booking"
	"github.com/BruksfildServices01/studio-console/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC      *ucBooking.CreateAppointment
	advanceUC     *ucBooking.AdvanceAppointment
	cancelUC      *ucBooking.CancelAppointment
	completeUC    *ucBooking.CompleteAppointment
	checkInUC     *ucBooking.CheckInAppointment
	checkOutUC    *ucBooking.CheckOutAppointment
	rescheduleUC  *ucBooking.RescheduleAppointment
	resolveUC     *ucBooking.ResolveReschedule
	retryRefundUC *ucBooking.RetryRefund
	availUC       *ucBooking.GetAvailability
	listByDateUC  *ucBooking.ListAppointmentsByDate
	listByMonthUC *ucBooking.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateAppointment,
	advanceUC *ucBooking.AdvanceAppointment,
	cancelUC *ucBooking.CancelAppointment,
	completeUC *ucBooking.CompleteAppointment,
	checkInUC *ucBooking.CheckInAppointment,
	checkOutUC *ucBooking.CheckOutAppointment,
	rescheduleUC *ucBooking.RescheduleAppointment,
	resolveUC *ucBooking.ResolveReschedule,
	retryRefundUC *ucBooking.RetryRefund,
	availUC *ucBooking.GetAvailability,
	listByDateUC *ucBooking.ListAppointmentsByDate,
	listByMonthUC *ucBooking.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:            db,
		createUC:      createUC,
		advanceUC:     advanceUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		checkInUC:     checkInUC,
		checkOutUC:    checkOutUC,
		rescheduleUC:  rescheduleUC,
		resolveUC:     resolveUC,
		retryRefundUC: retryRefundUC,
		availUC:       availUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`

	ServiceID  uint  `json:"service_id" binding:"required"`
	StaffID    uint  `json:"staff_id"`
	LocationID *uint `json:"location_id"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`

	Notify bool `json:"notify"`
}

type AdvanceRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
	Notify bool   `json:"notify"`
}

type RescheduleRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Notify bool   `json:"notify"`
}

type AnnotateRequest struct {
	Notes      *string `json:"notes,omitempty"`
	StaffNotes *string `json:"staff_notes,omitempty"`
}

type MarkPaidRequest struct {
	PaymentRef  string `json:"payment_ref" binding:"required"`
	AmountCents *int64 `json:"amount_cents"`
}

type ResolveRescheduleRequest struct {
	Accept     bool   `json:"accept"`
	AdminNotes string `json:"admin_notes"`
	Notify     bool   `json:"notify"`
}

type RetryRefundRequest struct {
	AmountCents *int64 `json:"amount_cents"`
}

// ======================================================
// HELPERS
// ======================================================

func actingUser(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE / LIST
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.CustomerPhone != "" {
		phone, ok := validators.NormalizePhone(req.CustomerPhone)
		if !ok {
			httperr.BadRequest(c, "validation_error", "Telefone de contato inválido.")
			return
		}
		req.CustomerPhone = phone
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		LocationID:    req.LocationID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		Notify:        req.Notify,
		By:            actingUser(c),
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.Created(c, result)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Data obrigatória.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "Data inválida.")
		return
	}

	staffID, _ := strconv.ParseUint(c.Query("staff_id"), 10, 64)

	out, err := h.listByDateUC.Execute(c.Request.Context(), uint(staffID), date)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "validation_error", "Ano e mês obrigatórios.")
		return
	}

	staffID, _ := strconv.ParseUint(c.Query("staff_id"), 10, 64)

	out, err := h.listByMonthUC.Execute(c.Request.Context(), uint(staffID), year, month)
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Preload("StaffMember.User").
		Preload("Location").
		First(&ap, id).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	staffID, errS := strconv.ParseUint(c.Query("staff_id"), 10, 64)
	serviceID, errP := strconv.ParseUint(c.Query("service_id"), 10, 64)
	dateStr := c.Query("date")

	if errS != nil || errP != nil || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Profissional, serviço e data obrigatórios.")
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

	httpresp.List(c, slots)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Advance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.advanceUC.Execute(c.Request.Context(), id, req.Status, actingUser(c))
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.cancelUC.Execute(c.Request.Context(), ucBooking.CancelAppointmentInput{
		AppointmentID: id,
		Reason:        req.Reason,
		SelfServe:     false,
		Notify:        req.Notify,
		By:            actingUser(c),
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, result)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), id, actingUser(c))
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.checkInUC.Execute(c.Request.Context(), id, actingUser(c))
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) CheckOut(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.checkOutUC.Execute(c.Request.Context(), id, actingUser(c))
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucBooking.RescheduleAppointmentInput{
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		Notify:        req.Notify,
		By:            actingUser(c),
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// Annotate atualiza apenas as observações, sem passar pela máquina de
// estados.
func (h *AppointmentHandler) Annotate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Notes != nil {
		ap.Notes = *req.Notes
	}
	if req.StaffNotes != nil {
		ap.StaffNotes = *req.StaffNotes
	}

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

// MarkPaid registra a confirmação do pagamento feita fora do console
// (link de pagamento, maquininha, pix).
func (h *AppointmentHandler) MarkPaid(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if ap.PaymentStatus != "unpaid" {
		httperr.BadRequest(c, "invalid_transition", "Agendamento não está aguardando pagamento.")
		return
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap.PaymentStatus = "paid"
	ap.PaymentRef = req.PaymentRef
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			httperr.BadRequest(c, "validation_error", "Valor inválido.")
			return
		}
		ap.PaymentAmountCents = *req.AmountCents
	}

	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// RESCHEDULE REQUESTS
// ======================================================

func (h *AppointmentHandler) ListRescheduleRequests(c *gin.Context) {
	q := h.db.Model(&models.RescheduleRequest{})

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	} else {
		q = q.Where("status = 'pending'")
	}

	var requests []models.RescheduleRequest
	if err := q.Order("created_at ASC").Find(&requests).Error; err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Erro ao listar solicitações.")
		return
	}

	httpresp.List(c, requests)
}

func (h *AppointmentHandler) ResolveReschedule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ResolveRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	result, err := h.resolveUC.Execute(c.Request.Context(), ucBooking.ResolveRescheduleInput{
		RequestID:  id,
		Accept:     req.Accept,
		AdminNotes: req.AdminNotes,
		Notify:     req.Notify,
		By:         actingUser(c),
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// REFUNDS
// ======================================================

// RefundQueue lista os reembolsos que precisam de ação: pendentes,
// falhos e em análise manual.
func (h *AppointmentHandler) RefundQueue(c *gin.Context) {
	var queue []models.Appointment
	if err := h.db.
		Preload("Service").
		Where("refund_status IN ('pending', 'manual_review', 'failed')").
		Order("cancelled_at ASC").
		Find(&queue).Error; err != nil {

		httperr.Internal(c, "failed_to_list_refunds", "Erro ao listar reembolsos.")
		return
	}

	httpresp.List(c, queue)
}

func (h *AppointmentHandler) RetryRefund(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RetryRefundRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.retryRefundUC.Execute(c.Request.Context(), ucBooking.RetryRefundInput{
		AppointmentID: id,
		AmountCents:   req.AmountCents,
		By:            actingUser(c),
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
