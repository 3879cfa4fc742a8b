package handler

import (
	"errors"
	"net/http"
	"strconv"

	"paygate/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecordsHandler serves the stored NVP calls, IPN deliveries and events.
type RecordsHandler struct {
	nvpRepo   *repository.NVPRepository
	ipnRepo   *repository.IPNRepository
	eventRepo *repository.EventRepository
}

func NewRecordsHandler(nvpRepo *repository.NVPRepository, ipnRepo *repository.IPNRepository, eventRepo *repository.EventRepository) *RecordsHandler {
	return &RecordsHandler{nvpRepo: nvpRepo, ipnRepo: ipnRepo, eventRepo: eventRepo}
}

func (h *RecordsHandler) ListTransactions(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.NVPFilter{
		Method:    c.Query("method"),
		ProfileID: c.Query("profile_id"),
		Flagged:   parseFlagged(c),
	}
	list, total, err := h.nvpRepo.List(c.Request.Context(), f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list, "total": total, "page": page, "limit": limit})
}

func (h *RecordsHandler) GetTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.nvpRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundOr500(c, err, "transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": rec})
}

func (h *RecordsHandler) ListNotifications(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.IPNFilter{
		TxnID:   c.Query("txn_id"),
		TxnType: c.Query("txn_type"),
		Flagged: parseFlagged(c),
	}
	list, total, err := h.ipnRepo.List(c.Request.Context(), f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "total": total, "page": page, "limit": limit})
}

func (h *RecordsHandler) GetNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.ipnRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundOr500(c, err, "notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": rec})
}

func (h *RecordsHandler) ListEvents(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.eventRepo.List(c.Request.Context(), c.Query("name"), c.Query("source"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": list, "total": total, "page": page, "limit": limit})
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// parseFlagged reads ?flagged=true|false; anything else means no filter.
func parseFlagged(c *gin.Context) *bool {
	v, err := strconv.ParseBool(c.Query("flagged"))
	if err != nil {
		return nil
	}
	return &v
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func notFoundOr500(c *gin.Context, err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
}
