package handlers

import (
	"fmt"
	"net/http"

	"rumor-detection/middleware"

	"github.com/gin-gonic/gin"
)

type trendQuery struct {
	Days int `form:"days,default=30" binding:"min=1,max=365"`
}

type keywordsQuery struct {
	Limit int `form:"limit,default=50" binding:"min=10,max=200"`
}

// Overview godoc
// @Summary Totals, rumor rate and mean confidence
// @Tags Analysis
// @Produce json
// @Success 200 {object} services.OverviewStats
// @Router /analysis/overview [get]
// @Security Bearer
func (h *Handler) Overview(c *gin.Context) {
	stats, err := h.stats.Overview(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.internalError(c, "Failed to compute overview", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Trend godoc
// @Summary Daily rumor and verified counts
// @Tags Analysis
// @Produce json
// @Param days query int false "Window in days, 1..365" default(30)
// @Success 200 {object} services.TrendResponse
// @Failure 422 {object} map[string]any
// @Router /analysis/trend [get]
// @Security Bearer
func (h *Handler) Trend(c *gin.Context) {
	var q trendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err)
		return
	}

	trend, err := h.stats.Trend(c.Request.Context(), middleware.CurrentUser(c).ID, q.Days)
	if err != nil {
		h.internalError(c, "Failed to compute trend", err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// Categories godoc
// @Summary Detections per analysis category
// @Tags Analysis
// @Produce json
// @Success 200 {object} services.CategoryResponse
// @Router /analysis/category [get]
// @Security Bearer
func (h *Handler) Categories(c *gin.Context) {
	resp, err := h.stats.Categories(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.internalError(c, "Failed to compute categories", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Keywords godoc
// @Summary Most frequent analysis keywords
// @Tags Analysis
// @Produce json
// @Param limit query int false "Number of keywords, 10..200" default(50)
// @Success 200 {object} services.KeywordsResponse
// @Failure 422 {object} map[string]any
// @Router /analysis/keywords [get]
// @Security Bearer
func (h *Handler) Keywords(c *gin.Context) {
	var q keywordsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err)
		return
	}

	resp, err := h.stats.Keywords(c.Request.Context(), middleware.CurrentUser(c).ID, q.Limit)
	if err != nil {
		h.internalError(c, fmt.Sprintf("Failed to compute top %d keywords", q.Limit), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RiskDistribution godoc
// @Summary Detections per risk level
// @Tags Analysis
// @Produce json
// @Success 200 {object} services.RiskDistributionResponse
// @Router /analysis/risk-distribution [get]
// @Security Bearer
func (h *Handler) RiskDistribution(c *gin.Context) {
	resp, err := h.stats.RiskDistribution(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.internalError(c, "Failed to compute risk distribution", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
