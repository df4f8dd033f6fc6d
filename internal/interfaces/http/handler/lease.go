package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// dateLayout is the calendar date format accepted in request bodies and queries
const dateLayout = "2006-01-02"

// LeaseHandler handles lease lifecycle and ledger endpoints
type LeaseHandler struct {
	BaseHandler
	leaseService *appledger.LeaseService
	queryService *appledger.LedgerQueryService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leaseService *appledger.LeaseService, queryService *appledger.LedgerQueryService) *LeaseHandler {
	return &LeaseHandler{
		leaseService: leaseService,
		queryService: queryService,
	}
}

// CreateLeaseRequest represents a move-in request. Amounts are in cents.
// @Description Request body for creating a lease
type CreateLeaseRequest struct {
	TenantID        string `json:"tenant_id" binding:"required,uuid" example:"8f0d6f5e-2a8c-4d3b-9a54-1f3c2b7d9e10"`
	UnitID          string `json:"unit_id" binding:"required,uuid" example:"3c1e2d4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"`
	StartDate       string `json:"start_date" binding:"required,datetime=2006-01-02" example:"2026-01-01"`
	RentAmount      int64  `json:"rent_amount" binding:"required,gt=0" example:"120000"`
	SecurityDeposit int64  `json:"security_deposit" binding:"gte=0" example:"120000"`
}

// EndLeaseRequest represents a move-out request
// @Description Request body for ending a lease
type EndLeaseRequest struct {
	MoveOutDate     string `json:"move_out_date" binding:"required,datetime=2006-01-02" example:"2026-06-30"`
	DeductionAmount int64  `json:"deduction_amount" example:"15000"`
	Description     string `json:"description" binding:"max=500" example:"Broken window"`
}

// ListLeasesQuery represents the lease listing filters
type ListLeasesQuery struct {
	dto.ListRequest
	ActiveOnly bool   `form:"active_only"`
	TenantID   string `form:"tenant_id" binding:"omitempty,uuid"`
	UnitID     string `form:"unit_id" binding:"omitempty,uuid"`
}

// Create godoc
// @Summary      Create a lease
// @Description  Moves a tenant into a unit and issues the first month rent and security deposit charges
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        request body CreateLeaseRequest true "Lease creation request"
// @Success      201 {object} APIResponse[appledger.CreateLeaseResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /leases [post]
func (h *LeaseHandler) Create(c *gin.Context) {
	var req CreateLeaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)
	result, err := h.leaseService.CreateLease(c.Request.Context(), appledger.CreateLeaseRequest{
		TenantID:        uuid.MustParse(req.TenantID),
		UnitID:          uuid.MustParse(req.UnitID),
		StartDate:       startDate,
		RentAmount:      ledger.Cents(req.RentAmount),
		SecurityDeposit: ledger.Cents(req.SecurityDeposit),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @Summary      List leases
// @Tags         leases
// @Produce      json
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Param        active_only query bool   false "Only active leases"
// @Param        tenant_id   query string false "Tenant ID" format(uuid)
// @Param        unit_id     query string false "Unit ID" format(uuid)
// @Success      200 {object} APIResponse[[]appledger.LeaseResponse]
// @Router       /leases [get]
func (h *LeaseHandler) List(c *gin.Context) {
	var query ListLeasesQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := ledger.LeaseFilter{
		Filter:     listFilter(query.ListRequest),
		ActiveOnly: query.ActiveOnly,
	}
	if query.TenantID != "" {
		id := uuid.MustParse(query.TenantID)
		filter.TenantID = &id
	}
	if query.UnitID != "" {
		id := uuid.MustParse(query.UnitID)
		filter.UnitID = &id
	}

	page, err := h.leaseService.ListLeases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @Summary      Get a lease
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.LeaseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /leases/{id} [get]
func (h *LeaseHandler) Get(c *gin.Context) {
	leaseID, ok := h.LeaseParam(c)
	if !ok {
		return
	}

	lease, err := h.leaseService.GetLease(c.Request.Context(), leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lease)
}

// End godoc
// @Summary      End a lease
// @Description  Moves the tenant out, optionally charging a damage deduction against the deposit
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        id      path string          true "Lease ID" format(uuid)
// @Param        request body EndLeaseRequest true "Move-out request"
// @Success      200 {object} APIResponse[appledger.EndLeaseResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /leases/{id}/end [post]
func (h *LeaseHandler) End(c *gin.Context) {
	leaseID, ok := h.LeaseParam(c)
	if !ok {
		return
	}

	var req EndLeaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	moveOut, _ := time.Parse(dateLayout, req.MoveOutDate)
	result, err := h.leaseService.EndLease(c.Request.Context(), appledger.EndLeaseRequest{
		LeaseID:         leaseID,
		MoveOutDate:     moveOut,
		DeductionAmount: ledger.Cents(req.DeductionAmount),
		Description:     req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Ledger godoc
// @Summary      Get a lease ledger
// @Description  Balance, deposit position and the charge/payment timeline of one lease
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.LeaseLedger]
// @Failure      404 {object} ErrorResponse
// @Router       /leases/{id}/ledger [get]
func (h *LeaseHandler) Ledger(c *gin.Context) {
	leaseID, ok := h.LeaseParam(c)
	if !ok {
		return
	}

	view, err := h.queryService.GetLeaseLedger(c.Request.Context(), leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}
