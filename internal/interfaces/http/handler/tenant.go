package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/rentledger/backend/internal/application/property"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// TenantHandler handles tenant registration and lookup
type TenantHandler struct {
	BaseHandler
	service *propertyapp.Service
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(service *propertyapp.Service) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenantRequest represents a new tenant
// @Description Request body for registering a tenant
type CreateTenantRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200" example:"Bob Smith"`
	Email string `json:"email" binding:"required,email,max=200" example:"bob@example.com"`
	Phone string `json:"phone" binding:"max=50" example:"+1 555 0102"`
}

// Create godoc
// @Summary      Register a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "Tenant"
// @Success      201 {object} APIResponse[propertyapp.TenantResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tenant, err := h.service.CreateTenant(c.Request.Context(), propertyapp.CreateTenantRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// List godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Name or email search"
// @Success      200 {object} APIResponse[[]propertyapp.TenantResponse]
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if !h.BindQuery(c, &query) {
		return
	}

	page, err := h.service.ListTenants(c.Request.Context(), listFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.TenantResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, ok := h.ParamUUID(c, "id", "tenant")
	if !ok {
		return
	}

	tenant, err := h.service.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}
