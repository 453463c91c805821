package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/middleware"
	"github.com/BruksfildServices01/studio-console/internal/settings"
	"github.com/BruksfildServices01/studio-console/internal/timezone"
)

type SettingsHandler struct {
	store *settings.Store
	audit *audit.Dispatcher
}

func NewSettingsHandler(store *settings.Store, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{store: store, audit: audit}
}

// --------- Requests ---------

type UpdateSettingsRequest struct {
	BufferMinutes  *int `json:"buffer_minutes"`
	MinNoticeHours *int `json:"min_notice_hours"`
	MaxAdvanceDays *int `json:"max_advance_days"`

	RequireApproval *bool `json:"require_approval"`

	AllowCancellation       *bool `json:"allow_cancellation"`
	CancellationNoticeHours *int  `json:"cancellation_notice_hours"`

	AllowShiftOverlap *bool `json:"allow_shift_overlap"`

	Timezone *string `json:"timezone"`
}

// --------- Handlers ---------

func (h *SettingsHandler) Get(c *gin.Context) {
	st, err := h.store.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configurações.")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	st, err := h.store.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configurações.")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.BufferMinutes != nil {
		if *req.BufferMinutes < 0 || *req.BufferMinutes > 240 {
			httperr.BadRequest(c, "validation_error", "Buffer fora de 0 a 240 minutos.")
			return
		}
		st.BufferMinutes = *req.BufferMinutes
	}
	if req.MinNoticeHours != nil {
		if *req.MinNoticeHours < 0 {
			httperr.BadRequest(c, "validation_error", "Antecedência mínima inválida.")
			return
		}
		st.MinNoticeHours = *req.MinNoticeHours
	}
	if req.MaxAdvanceDays != nil {
		if *req.MaxAdvanceDays < 0 {
			httperr.BadRequest(c, "validation_error", "Antecedência máxima inválida.")
			return
		}
		st.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.RequireApproval != nil {
		st.RequireApproval = *req.RequireApproval
	}
	if req.AllowCancellation != nil {
		st.AllowCancellation = *req.AllowCancellation
	}
	if req.CancellationNoticeHours != nil {
		if *req.CancellationNoticeHours < 0 {
			httperr.BadRequest(c, "validation_error", "Antecedência de cancelamento inválida.")
			return
		}
		st.CancellationNoticeHours = *req.CancellationNoticeHours
	}
	if req.AllowShiftOverlap != nil {
		st.AllowShiftOverlap = *req.AllowShiftOverlap
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "validation_error", "Timezone desconhecido.")
			return
		}
		st.Timezone = *req.Timezone
	}

	if err := h.store.Update(c.Request.Context(), st); err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar configurações.")
		return
	}

	by := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID: &by,
		Action: "settings_updated",
		Entity: "booking_settings",
	})

	c.JSON(http.StatusOK, st)
}
