package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appledger "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/domain/ledger"
)

// ChargeHandler handles charge issuance and voiding
type ChargeHandler struct {
	BaseHandler
	chargeService   *appledger.ChargeService
	reversalService *appledger.ReversalService
}

// NewChargeHandler creates a new ChargeHandler
func NewChargeHandler(chargeService *appledger.ChargeService, reversalService *appledger.ReversalService) *ChargeHandler {
	return &ChargeHandler{
		chargeService:   chargeService,
		reversalService: reversalService,
	}
}

// IssueChargeRequest represents a manual charge. Amount is in cents.
// @Description Request body for issuing a charge
type IssueChargeRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0" example:"5000"`
	Type        string `json:"type" binding:"required,charge_type" example:"LATE_FEE"`
	Description string `json:"description" binding:"max=500" example:"Late fee - January"`
	DueDate     string `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2026-01-05"`
}

// Issue godoc
// @Summary      Issue a charge
// @Tags         charges
// @Accept       json
// @Produce      json
// @Param        id      path string             true "Lease ID" format(uuid)
// @Param        request body IssueChargeRequest true "Charge"
// @Success      201 {object} APIResponse[appledger.ChargeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /leases/{id}/charges [post]
func (h *ChargeHandler) Issue(c *gin.Context) {
	leaseID, ok := h.LeaseParam(c)
	if !ok {
		return
	}

	var req IssueChargeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	chargeType, err := ledger.ParseChargeType(req.Type)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	appReq := appledger.IssueChargeRequest{
		LeaseID:     leaseID,
		Amount:      ledger.Cents(req.Amount),
		Type:        chargeType,
		Description: req.Description,
	}
	if req.DueDate != "" {
		dueDate, _ := time.Parse(dateLayout, req.DueDate)
		appReq.DueDate = &dueDate
	}

	charge, err := h.chargeService.IssueCharge(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, charge)
}

// Get godoc
// @Summary      Get a charge
// @Tags         charges
// @Produce      json
// @Param        id path string true "Charge ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.ChargeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /charges/{id} [get]
func (h *ChargeHandler) Get(c *gin.Context) {
	chargeID, ok := h.ParamUUID(c, "id", "charge")
	if !ok {
		return
	}

	charge, err := h.chargeService.GetCharge(c.Request.Context(), chargeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, charge)
}

// Void godoc
// @Summary      Void a charge
// @Description  Marks the charge voided and releases every allocation against it
// @Tags         charges
// @Produce      json
// @Param        id path string true "Charge ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.ChargeResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /charges/{id}/void [post]
func (h *ChargeHandler) Void(c *gin.Context) {
	chargeID, ok := h.ParamUUID(c, "id", "charge")
	if !ok {
		return
	}

	charge, err := h.reversalService.VoidCharge(c.Request.Context(), chargeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, charge)
}
