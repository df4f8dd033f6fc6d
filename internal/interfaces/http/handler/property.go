package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/rentledger/backend/internal/application/property"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// PropertyHandler handles properties and their units
type PropertyHandler struct {
	BaseHandler
	service *propertyapp.Service
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(service *propertyapp.Service) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// CreatePropertyRequest represents a new property
// @Description Request body for creating a property
type CreatePropertyRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Sunset Apartments"`
	Address string `json:"address" binding:"required,min=1,max=500" example:"123 Sunset Blvd"`
}

// CreateUnitRequest represents a new unit. MonthlyRent is in cents.
// @Description Request body for creating a unit
type CreateUnitRequest struct {
	UnitNumber  string `json:"unit_number" binding:"required,min=1,max=50" example:"101"`
	MonthlyRent int64  `json:"monthly_rent" binding:"gte=0" example:"120000"`
}

// Create godoc
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "Property"
// @Success      201 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	prop, err := h.service.CreateProperty(c.Request.Context(), propertyapp.CreatePropertyRequest{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, prop)
}

// List godoc
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Name search"
// @Success      200 {object} APIResponse[[]propertyapp.PropertyResponse]
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if !h.BindQuery(c, &query) {
		return
	}

	page, err := h.service.ListProperties(c.Request.Context(), listFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	propertyID, ok := h.ParamUUID(c, "id", "property")
	if !ok {
		return
	}

	prop, err := h.service.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// CreateUnit godoc
// @Summary      Add a unit to a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Property ID" format(uuid)
// @Param        request body CreateUnitRequest true "Unit"
// @Success      201 {object} APIResponse[propertyapp.UnitResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /properties/{id}/units [post]
func (h *PropertyHandler) CreateUnit(c *gin.Context) {
	propertyID, ok := h.ParamUUID(c, "id", "property")
	if !ok {
		return
	}

	var req CreateUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	unit, err := h.service.CreateUnit(c.Request.Context(), propertyapp.CreateUnitRequest{
		PropertyID:  propertyID,
		UnitNumber:  req.UnitNumber,
		MonthlyRent: req.MonthlyRent,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// ListUnits godoc
// @Summary      List the units of a property
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} APIResponse[[]propertyapp.UnitResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /properties/{id}/units [get]
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	propertyID, ok := h.ParamUUID(c, "id", "property")
	if !ok {
		return
	}

	units, err := h.service.ListUnits(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}
