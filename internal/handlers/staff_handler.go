package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-console/internal/audit"
	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/httpresp"
	"github.com/BruksfildServices01/studio-console/internal/middleware"
	"github.com/BruksfildServices01/studio-console/internal/models"
	"github.com/BruksfildServices01/studio-console/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, audit *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	Title string `json:"title"`
	Color string `json:"color"`

	// Janela inicial de expediente (segunda a sexta); vazio usa o padrão.
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type UpdateStaffRequest struct {
	Title  *string `json:"title"`
	Color  *string `json:"color"`
	Active *bool   `json:"active"`
}

type AvailabilityDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityUpdateRequest struct {
	Days []AvailabilityDayConfig `json:"days" binding:"required"`
}

// ======================================================
// STAFF CRUD
// ======================================================

func (h *StaffHandler) List(c *gin.Context) {
	q := h.db.Preload("User")

	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	var staff []models.StaffMember
	if err := q.Order("id ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar equipe.")
		return
	}

	httpresp.List(c, staff)
}

// Create abre a conta de acesso, o cadastro de equipe e a
// disponibilidade inicial em uma única transação.
func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	if (req.OpenTime == "") != (req.CloseTime == "") {
		httperr.BadRequest(c, "validation_error", "Informe abertura e fechamento juntos.")
		return
	}
	if req.OpenTime != "" && !validClockPair(req.OpenTime, req.CloseTime) {
		httperr.BadRequest(c, "validation_error", "Janela de expediente inválida.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	var staff models.StaffMember

	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Role:         "staff",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		staff = models.StaffMember{
			UserID: user.ID,
			Title:  req.Title,
			Color:  req.Color,
			Active: true,
		}
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}

		week := domain.DefaultWeek(staff.ID, req.OpenTime, req.CloseTime)
		return tx.Create(&week).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "email_already_exists", "Já existe uma conta com este e-mail.")
			return
		}
		httperr.Internal(c, "failed_to_create_staff", "Erro ao cadastrar profissional.")
		return
	}

	by := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &by,
		Action:   "staff_created",
		Entity:   "staff_member",
		EntityID: &staff.ID,
	})

	h.db.Preload("User").First(&staff, staff.ID)
	httpresp.Created(c, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var staff models.StaffMember
	if err := h.db.First(&staff, staffID).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Title != nil {
		staff.Title = *req.Title
	}
	if req.Color != nil {
		staff.Color = *req.Color
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Erro ao atualizar profissional.")
		return
	}

	by := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &by,
		Action:   "staff_updated",
		Entity:   "staff_member",
		EntityID: &staff.ID,
	})

	httpresp.OK(c, staff)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *StaffHandler) GetAvailability(c *gin.Context) {
	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var week []models.Availability
	if err := h.db.
		Where("staff_member_id = ?", staffID).
		Order("weekday ASC").
		Find(&week).Error; err != nil {

		httperr.Internal(c, "failed_to_get_availability", "Erro ao buscar disponibilidade.")
		return
	}

	httpresp.OK(c, week)
}

// UpdateAvailability substitui a semana inteira. Cada dia exige os
// dois horários preenchidos ou os dois vazios (dia fechado).
func (h *StaffHandler) UpdateAvailability(c *gin.Context) {
	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var staff models.StaffMember
	if err := h.db.First(&staff, staffID).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	seen := make(map[int]bool, 7)
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "validation_error", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		if (d.StartTime == "") != (d.EndTime == "") {
			httperr.BadRequest(c, "validation_error", "Informe início e fim juntos, ou deixe os dois vazios.")
			return
		}
		if d.StartTime != "" && !validClockPair(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "validation_error", "Janela de expediente inválida.")
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_member_id = ?", staff.ID).
			Delete(&models.Availability{}).Error; err != nil {
			return err
		}

		toCreate := make([]models.Availability, 0, len(req.Days))
		for _, d := range req.Days {
			toCreate = append(toCreate, models.Availability{
				StaffMemberID: staff.ID,
				Weekday:       d.Weekday,
				StartTime:     d.StartTime,
				EndTime:       d.EndTime,
			})
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_availability", "Erro ao salvar disponibilidade.")
		return
	}

	by := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &by,
		Action:   "availability_updated",
		Entity:   "staff_member",
		EntityID: &staff.ID,
	})

	h.GetAvailability(c)
}

// SeedDefaultAvailability volta a semana para o padrão segunda a
// sexta, com janela opcional no corpo.
func (h *StaffHandler) SeedDefaultAvailability(c *gin.Context) {
	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var staff models.StaffMember
	if err := h.db.First(&staff, staffID).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req struct {
		OpenTime  string `json:"open_time"`
		CloseTime string `json:"close_time"`
	}
	_ = c.ShouldBindJSON(&req)

	if (req.OpenTime == "") != (req.CloseTime == "") {
		httperr.BadRequest(c, "validation_error", "Informe abertura e fechamento juntos.")
		return
	}
	if req.OpenTime != "" && !validClockPair(req.OpenTime, req.CloseTime) {
		httperr.BadRequest(c, "validation_error", "Janela de expediente inválida.")
		return
	}

	week := domain.DefaultWeek(staff.ID, req.OpenTime, req.CloseTime)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_member_id = ?", staff.ID).
			Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		return tx.Create(&week).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_availability", "Erro ao salvar disponibilidade.")
		return
	}

	httpresp.OK(c, week)
}

func validClockPair(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return e.After(s)
}
