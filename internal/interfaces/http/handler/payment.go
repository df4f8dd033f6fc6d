package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appledger "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/domain/ledger"
)

// PaymentHandler handles payments and their allocations
type PaymentHandler struct {
	BaseHandler
	allocationService *appledger.AllocationService
	reversalService   *appledger.ReversalService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(allocationService *appledger.AllocationService, reversalService *appledger.ReversalService) *PaymentHandler {
	return &PaymentHandler{
		allocationService: allocationService,
		reversalService:   reversalService,
	}
}

// RecordPaymentRequest represents money received on a lease. Amount is in cents.
// @Description Request body for recording a payment
type RecordPaymentRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0" example:"80000"`
	Method string `json:"method" binding:"required,payment_method" example:"MOBILE_MONEY"`
}

// AllocatePaymentRequest represents a manual allocation of payment credit
// @Description Request body for allocating part of a payment to a charge
type AllocatePaymentRequest struct {
	ChargeID string `json:"charge_id" binding:"required,uuid" example:"3c1e2d4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"`
	Amount   int64  `json:"amount" binding:"required,gt=0" example:"5000"`
}

// Record godoc
// @Summary      Record a payment
// @Description  Records the payment and applies it to open charges, deposits first then oldest due
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Lease ID" format(uuid)
// @Param        request body RecordPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[appledger.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /leases/{id}/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	leaseID, ok := h.LeaseParam(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	method, err := ledger.ParsePaymentMethod(req.Method)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payment, err := h.allocationService.RecordPayment(c.Request.Context(), appledger.RecordPaymentRequest{
		LeaseID: leaseID,
		Amount:  ledger.Cents(req.Amount),
		Method:  method,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// Get godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, ok := h.ParamUUID(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.allocationService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Refund godoc
// @Summary      Refund a payment
// @Description  Marks the payment refunded and releases its allocations; charges it covered become due again
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[appledger.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	paymentID, ok := h.ParamUUID(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.reversalService.RefundPayment(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Allocate godoc
// @Summary      Allocate payment credit to a charge
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Payment ID" format(uuid)
// @Param        request body AllocatePaymentRequest true "Allocation"
// @Success      201 {object} APIResponse[appledger.AllocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse "Allocation exceeds the payment or the charge; error.remaining holds the live figure"
// @Router       /payments/{id}/allocations [post]
func (h *PaymentHandler) Allocate(c *gin.Context) {
	paymentID, ok := h.ParamUUID(c, "id", "payment")
	if !ok {
		return
	}

	var req AllocatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	allocation, err := h.allocationService.AllocateManually(c.Request.Context(), appledger.ManualAllocationRequest{
		PaymentID: paymentID,
		ChargeID:  uuid.MustParse(req.ChargeID),
		Amount:    ledger.Cents(req.Amount),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, allocation)
}
