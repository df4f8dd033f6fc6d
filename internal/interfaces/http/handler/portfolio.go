package handler

import (
	"github.com/gin-gonic/gin"
	appledger "github.com/rentledger/backend/internal/application/ledger"
)

// PortfolioHandler serves the portfolio dashboard
type PortfolioHandler struct {
	BaseHandler
	queryService *appledger.LedgerQueryService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(queryService *appledger.LedgerQueryService) *PortfolioHandler {
	return &PortfolioHandler{queryService: queryService}
}

// GetMetrics godoc
// @Summary      Portfolio metrics
// @Description  Arrears, held deposits, revenue this month, per-property performance and the risk watchlist
// @Tags         metrics
// @Produce      json
// @Success      200 {object} APIResponse[appledger.PortfolioMetrics]
// @Router       /metrics/portfolio [get]
func (h *PortfolioHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.queryService.GetPortfolioMetrics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, metrics)
}
