package handlers

import (
	"fmt"
	"net/http"
	"time"

	"rumor-detection/middleware"
	"rumor-detection/models"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type historyQuery struct {
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"min=1,max=100"`
	IsRumor   *bool  `form:"is_rumor"`
	RiskLevel string `form:"risk_level" binding:"omitempty,oneof=low medium high critical"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type historyPage struct {
	Items      []services.DetectionResponse `json:"items"`
	Total      int64                        `json:"total"`
	Page       int                          `json:"page"`
	PageSize   int                          `json:"page_size"`
	TotalPages int64                        `json:"total_pages"`
}

type batchDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid time %q", s)
}

// ListHistory godoc
// @Summary Paginated detection history
// @Tags History
// @Produce json
// @Param page query int false "Page, from 1" default(1)
// @Param page_size query int false "Page size, 1..100" default(20)
// @Param is_rumor query bool false "Only rumors or only non-rumors"
// @Param risk_level query string false "low, medium, high or critical"
// @Param start_date query string false "Earliest created_at (RFC 3339 or YYYY-MM-DD)"
// @Param end_date query string false "Latest created_at (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} historyPage
// @Failure 422 {object} map[string]any
// @Router /history [get]
// @Security Bearer
func (h *Handler) ListHistory(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err)
		return
	}

	filter := services.ListFilter{
		Page:      q.Page,
		PageSize:  q.PageSize,
		IsRumor:   q.IsRumor,
		RiskLevel: models.RiskLevel(q.RiskLevel),
	}
	var err error
	fields := map[string]string{}
	if filter.StartDate, err = parseTimeParam(q.StartDate); err != nil {
		fields["start_date"] = "must be an RFC 3339 timestamp or a YYYY-MM-DD date"
	}
	if filter.EndDate, err = parseTimeParam(q.EndDate); err != nil {
		fields["end_date"] = "must be an RFC 3339 timestamp or a YYYY-MM-DD date"
	}
	if len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	dets, total, err := h.detections.List(c.Request.Context(), middleware.CurrentUser(c).ID, filter)
	if err != nil {
		h.internalError(c, "Failed to load history", err)
		return
	}

	page := historyPage{
		Items:      make([]services.DetectionResponse, 0, len(dets)),
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + int64(q.PageSize) - 1) / int64(q.PageSize),
	}
	for i := range dets {
		page.Items = append(page.Items, services.ToResponse(&dets[i]))
	}
	c.JSON(http.StatusOK, page)
}

// HistoryStats godoc
// @Summary Counts over the whole history
// @Tags History
// @Produce json
// @Success 200 {object} services.HistoryStats
// @Router /history/stats [get]
// @Security Bearer
func (h *Handler) HistoryStats(c *gin.Context) {
	stats, err := h.stats.HistoryStats(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.internalError(c, "Failed to compute history stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DeleteHistoryItem godoc
// @Summary Delete one detection
// @Tags History
// @Produce json
// @Param id path string true "Detection ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /history/{id} [delete]
// @Security Bearer
func (h *Handler) DeleteHistoryItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.detections.Delete(c.Request.Context(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		h.internalError(c, "Failed to delete detection", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Detection not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Detection deleted successfully", "success": true})
}

// DeleteHistoryBatch godoc
// @Summary Delete several detections
// @Description Ids that are missing or owned by someone else are skipped.
// @Tags History
// @Accept json
// @Produce json
// @Param body body batchDeleteRequest true "Detection IDs"
// @Success 200 {object} map[string]any
// @Router /history/batch [delete]
// @Security Bearer
func (h *Handler) DeleteHistoryBatch(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	deleted := h.detections.DeleteBatch(c.Request.Context(), req.IDs, middleware.CurrentUser(c).ID)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Deleted %d records", deleted),
		"success": true,
		"deleted": deleted,
	})
}
