package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/smallbiz_ledger/internal/core/ports/services"
	"github.com/SscSPs/smallbiz_ledger/internal/dto"
	"github.com/SscSPs/smallbiz_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:entryID", h.getJournalEntry)
		entries.PUT("/:entryID", h.updateJournalEntry)
		entries.POST("/:entryID/reverse", h.reverseJournalEntry)
		entries.DELETE("/:entryID", h.deleteJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Validates and posts a balanced journal entry with its lines
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.JournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.CreateJournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request or journal line"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]interface{} "Debits and credits do not balance"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.CreateJournalEntryResponse{EntryID: entry.EntryID})
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entry headers by date, newest first. Without a limit every entry is returned.
// @Tags journal-entries
// @Produce  json
// @Param   limit query int false "Page size (1-100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	if params.Limit == 0 && params.NextToken == nil {
		entries, err := h.journalService.ListJournalEntries(c.Request.Context())
		if err != nil {
			writeServiceError(c, err, "Failed to list journal entries")
			return
		}
		c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{Entries: dto.ToJournalEntryResponses(entries)})
		return
	}

	resp, err := h.journalService.ListJournalEntriesPage(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines, each enriched with the account's code, name and type
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), entryID)
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(*entry))
}

// updateJournalEntry godoc
// @Summary Replace a journal entry
// @Description Replaces header fields and every line of a posted entry. Omitted lines are removed.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Journal entry ID"
// @Param   entry body dto.JournalEntryRequest true "Journal entry"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid request or journal line"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry is voided"
// @Failure 422 {object} map[string]interface{} "Debits and credits do not balance"
// @Failure 500 {object} map[string]string "Failed to update journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [put]
func (h *journalHandler) updateJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if _, err := h.journalService.UpdateJournalEntry(c.Request.Context(), entryID, req); err != nil {
		writeServiceError(c, err, "Failed to update journal entry")
		return
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, gin.H{"message": "Journal entry updated", "entryID": entryID})
}

// reverseJournalEntry godoc
// @Summary Reverse a journal entry
// @Description Posts an offsetting entry with every debit and credit swapped and voids the original
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Journal entry ID"
// @Success 201 {object} dto.ReverseJournalEntryResponse
// @Failure 400 {object} map[string]string "Entry has no lines"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry already voided"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), entryID)
	if err != nil {
		writeServiceError(c, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ReverseJournalEntryResponse{OriginalID: entryID, ReversalID: reversal.EntryID})
}

// deleteJournalEntry godoc
// @Summary Delete a voided journal entry
// @Description Physically removes a voided entry and its lines. Posted entries must be reversed instead.
// @Tags journal-entries
// @Param   entryID path string true "Journal entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Journal entry is still posted"
// @Failure 500 {object} map[string]string "Failed to delete journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [delete]
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), entryID); err != nil {
		writeServiceError(c, err, "Failed to delete journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}
