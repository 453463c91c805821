package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/httpresp"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

type LocationHandler struct {
	db *gorm.DB
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type UpdateLocationRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

func (h *LocationHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Location{})
	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	var locations []models.Location
	if err := q.Order("id ASC").Find(&locations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_locations", "Erro ao listar locais.")
		return
	}

	httpresp.List(c, locations)
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	loc := models.Location{
		Name:    req.Name,
		Address: req.Address,
		Active:  true,
	}

	if err := h.db.Create(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_location", "Erro ao criar local.")
		return
	}

	httpresp.Created(c, loc)
}

func (h *LocationHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var loc models.Location
	if err := h.db.First(&loc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "location_not_found", "Local não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_location", "Erro ao buscar local.")
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.Active != nil {
		loc.Active = *req.Active
	}

	if err := h.db.Save(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_location", "Erro ao atualizar local.")
		return
	}

	c.JSON(http.StatusOK, loc)
}
