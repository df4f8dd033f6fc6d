package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appledger "github.com/rentledger/backend/internal/application/ledger"
)

// CronHandler exposes the externally scheduled jobs
type CronHandler struct {
	BaseHandler
	generator *appledger.RentGenerator
	now       func() time.Time
}

// NewCronHandler creates a new CronHandler
func NewCronHandler(generator *appledger.RentGenerator) *CronHandler {
	return &CronHandler{generator: generator, now: time.Now}
}

// GenerateRentQuery lets operators backfill a specific month
type GenerateRentQuery struct {
	AsOf string `form:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// GenerateRent godoc
// @Summary      Generate monthly rent
// @Description  Issues one RENT charge per active lease for the current month; safe to call repeatedly
// @Tags         cron
// @Produce      json
// @Param        Authorization header string false "Bearer <cron secret>"
// @Param        as_of         query  string false "Any date in the target month (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[appledger.RentGenerationResult]
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /cron/generate-rent [post]
func (h *CronHandler) GenerateRent(c *gin.Context) {
	var query GenerateRentQuery
	if !h.BindQuery(c, &query) {
		return
	}

	asOf := h.now().UTC()
	if query.AsOf != "" {
		asOf, _ = time.Parse(dateLayout, query.AsOf)
	}

	result, err := h.generator.GenerateMonthlyRent(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
