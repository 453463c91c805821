package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/httpresp"
	"github.com/BruksfildServices01/studio-console/internal/media"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

type ServiceHandler struct {
	db      *gorm.DB
	storage media.Storage
}

// storage pode ser nil; nesse caso o upload de imagem fica desabilitado.
func NewServiceHandler(db *gorm.DB, storage media.Storage) *ServiceHandler {
	return &ServiceHandler{db: db, storage: storage}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`

	DurationMin int    `json:"duration_min" binding:"required,min=1"`
	PriceCents  *int64 `json:"price_cents"`

	RequiresPayment bool `json:"requires_payment"`

	CancellationPolicy      string `json:"cancellation_policy"`
	CancellationWindowHours *int   `json:"cancellation_window_hours"`
	RefundPercentage        *int   `json:"refund_percentage"`
	DepositPercentage       *int   `json:"deposit_percentage"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`

	DurationMin *int   `json:"duration_min,omitempty"`
	PriceCents  *int64 `json:"price_cents,omitempty"`

	RequiresPayment *bool `json:"requires_payment,omitempty"`

	CancellationPolicy      *string `json:"cancellation_policy,omitempty"`
	CancellationWindowHours *int    `json:"cancellation_window_hours,omitempty"`
	RefundPercentage        *int    `json:"refund_percentage,omitempty"`
	DepositPercentage       *int    `json:"deposit_percentage,omitempty"`

	Active *bool `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Service{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
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

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		Category:        strings.ToLower(req.Category),
		DurationMin:     req.DurationMin,
		PriceCents:      req.PriceCents,
		RequiresPayment: req.RequiresPayment,

		CancellationPolicy:      domain.PolicyFullRefund,
		CancellationWindowHours: 24,
		RefundPercentage:        100,
		DepositPercentage:       0,

		Active: true,
	}

	if req.CancellationPolicy != "" {
		svc.CancellationPolicy = req.CancellationPolicy
	}
	if req.CancellationWindowHours != nil {
		svc.CancellationWindowHours = *req.CancellationWindowHours
	}
	if req.RefundPercentage != nil {
		svc.RefundPercentage = *req.RefundPercentage
	}
	if req.DepositPercentage != nil {
		svc.DepositPercentage = *req.DepositPercentage
	}

	if msg, ok := validatePolicyFields(&svc); !ok {
		httperr.BadRequest(c, "validation_error", msg)
		return
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var svc models.Service
	if err := h.db.First(&svc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Category != nil {
		svc.Category = strings.ToLower(*req.Category)
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.PriceCents != nil {
		svc.PriceCents = req.PriceCents
	}
	if req.RequiresPayment != nil {
		svc.RequiresPayment = *req.RequiresPayment
	}
	if req.CancellationPolicy != nil {
		svc.CancellationPolicy = *req.CancellationPolicy
	}
	if req.CancellationWindowHours != nil {
		svc.CancellationWindowHours = *req.CancellationWindowHours
	}
	if req.RefundPercentage != nil {
		svc.RefundPercentage = *req.RefundPercentage
	}
	if req.DepositPercentage != nil {
		svc.DepositPercentage = *req.DepositPercentage
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if svc.DurationMin < 1 {
		httperr.BadRequest(c, "validation_error", "Duração inválida.")
		return
	}
	if msg, ok := validatePolicyFields(&svc); !ok {
		httperr.BadRequest(c, "validation_error", msg)
		return
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, svc)
}

// UploadImage recebe multipart, normaliza para WebP e publica no
// bucket configurado.
func (h *ServiceHandler) UploadImage(c *gin.Context) {
	if h.storage == nil {
		httperr.BadRequest(c, "uploads_disabled", "Armazenamento de imagens não configurado.")
		return
	}

	id := c.Param("id")

	var svc models.Service
	if err := h.db.First(&svc, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Arquivo de imagem obrigatório (campo image).")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler a imagem.")
		return
	}
	defer src.Close()

	data, err := media.ProcessImage(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida; envie JPEG ou PNG.")
		return
	}

	key := fmt.Sprintf("services/%d/%d.webp", svc.ID, time.Now().Unix())
	url, err := h.storage.Put(c.Request.Context(), key, "image/webp", data)
	if err != nil {
		httperr.Internal(c, "failed_to_store_image", "Erro ao armazenar a imagem.")
		return
	}

	svc.ImageURL = url
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, svc)
}

func validatePolicyFields(svc *models.Service) (string, bool) {
	if !domain.IsValidPolicy(svc.CancellationPolicy) {
		return "Política de cancelamento desconhecida.", false
	}
	if svc.CancellationWindowHours < 0 {
		return "Janela de cancelamento inválida.", false
	}
	if svc.RefundPercentage < 0 || svc.RefundPercentage > 100 {
		return "Percentual de reembolso fora de 0 a 100.", false
	}
	if svc.DepositPercentage < 0 || svc.DepositPercentage > 100 {
		return "Percentual de depósito fora de 0 a 100.", false
	}
	return "", true
}
