package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/smallbiz_ledger/internal/core/ports/services"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
	"github.com/SscSPs/smallbiz_ledger/internal/middleware"
	"github.com/SscSPs/smallbiz_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// stockMovementHandler handles HTTP requests related to inventory movements.
type stockMovementHandler struct {
	movementService portssvc.StockMovementSvcFacade
	posthogClient   *utils.PosthogClientWrapper
}

func newStockMovementHandler(movementService portssvc.StockMovementSvcFacade, posthogClient *utils.PosthogClientWrapper) *stockMovementHandler {
	return &stockMovementHandler{
		movementService: movementService,
		posthogClient:   posthogClient,
	}
}

// RegisterStockMovementRoutes registers routes related to stock movements.
// posthogClient may be nil.
func RegisterStockMovementRoutes(rg *gin.RouterGroup, movementService portssvc.StockMovementSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newStockMovementHandler(movementService, posthogClient)

	movements := rg.Group("/stock-movements")
	{
		movements.POST("", h.recordMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:movementID", h.getMovement)
		movements.PATCH("/:movementID", h.updateMovement)
		movements.DELETE("/:movementID", h.deleteMovement)
	}
}

// recordMovement godoc
// @Summary Record a stock movement
// @Description Records a signed quantity change for a product and, when an inventory account is given, posts a journal entry for it.
// @Description A failed posting does not fail the movement; journalPosted is false in that case.
// @Tags stock-movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.RecordStockMovementRequest true "Stock movement"
// @Success 201 {object} dto.RecordStockMovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to record stock movement"
// @Security BearerAuth
// @Router /stock-movements [post]
func (h *stockMovementHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordStockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.movementService.RecordMovement(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "Failed to record stock movement")
		return
	}

	journalRequested := req.InventoryAccountID != nil && (req.AutoCreateJournal == nil || *req.AutoCreateJournal)
	if journalRequested {
		event := "journal_auto_posted"
		if result.JournalID == nil {
			event = "journal_auto_post_skipped"
			logger.Warn("Stock movement recorded without journal", slog.String("movement_id", result.Movement.MovementID))
		}
		middleware.PosthogEvent(c, h.posthogClient, event, map[string]any{
			"movement_id":   result.Movement.MovementID,
			"movement_type": string(result.Movement.MovementType),
		})
	}

	c.JSON(http.StatusCreated, dto.ToRecordStockMovementResponse(*result))
}

// listMovements godoc
// @Summary List stock movements
// @Tags stock-movements
// @Produce  json
// @Param   productID query string false "Only movements of this product"
// @Param   limit query int false "Page size (1-100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListStockMovementsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list stock movements"
// @Security BearerAuth
// @Router /stock-movements [get]
func (h *stockMovementHandler) listMovements(c *gin.Context) {
	var params dto.ListStockMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.movementService.ListMovements(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, "Failed to list stock movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getMovement godoc
// @Summary Get a stock movement
// @Tags stock-movements
// @Produce  json
// @Param   movementID path string true "Movement ID"
// @Success 200 {object} dto.StockMovementResponse
// @Failure 404 {object} map[string]string "Stock movement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stock movement"
// @Security BearerAuth
// @Router /stock-movements/{movementID} [get]
func (h *stockMovementHandler) getMovement(c *gin.Context) {
	movement, err := h.movementService.GetMovement(c.Request.Context(), c.Param("movementID"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve stock movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockMovementResponse(*movement))
}

// updateMovement godoc
// @Summary Update a stock movement
// @Description Changes the given fields. A quantity change moves the product's on-hand quantity by the difference; the linked journal entry is not regenerated.
// @Tags stock-movements
// @Accept  json
// @Produce  json
// @Param   movementID path string true "Movement ID"
// @Param   movement body dto.UpdateStockMovementRequest true "Fields to change"
// @Success 200 {object} dto.StockMovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Stock movement not found"
// @Failure 500 {object} map[string]string "Failed to update stock movement"
// @Security BearerAuth
// @Router /stock-movements/{movementID} [patch]
func (h *stockMovementHandler) updateMovement(c *gin.Context) {
	var req dto.UpdateStockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	movement, err := h.movementService.UpdateMovement(c.Request.Context(), c.Param("movementID"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to update stock movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockMovementResponse(*movement))
}

// deleteMovement godoc
// @Summary Delete a stock movement
// @Description Removes the movement, takes its quantity back out of the product and reverses its posted journal entry.
// @Tags stock-movements
// @Produce  json
// @Param   movementID path string true "Movement ID"
// @Success 200 {object} dto.DeleteStockMovementResponse
// @Failure 404 {object} map[string]string "Stock movement not found"
// @Failure 500 {object} map[string]string "Failed to delete stock movement"
// @Security BearerAuth
// @Router /stock-movements/{movementID} [delete]
func (h *stockMovementHandler) deleteMovement(c *gin.Context) {
	result, err := h.movementService.DeleteMovement(c.Request.Context(), c.Param("movementID"))
	if err != nil {
		writeServiceError(c, err, "Failed to delete stock movement")
		return
	}
	c.JSON(http.StatusOK, dto.DeleteStockMovementResponse{
		MovementID:        result.MovementID,
		ReversalJournalID: result.ReversalJournalID,
		QuantityOnHand:    result.QuantityOnHand,
	})
}
