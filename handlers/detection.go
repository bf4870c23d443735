package handlers

import (
	"errors"
	"net/http"

	"rumor-detection/middleware"
	"rumor-detection/models"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type detectionRequest struct {
	Content         string `json:"content" binding:"required,max=5000"`
	IncludeAnalysis *bool  `json:"include_analysis"`

	// Ignored; propagation is read from /detection/:id/propagation.
	IncludePropagation bool `json:"include_propagation"`
}

type batchDetectionRequest struct {
	Contents        []string `json:"contents" binding:"required,min=1,max=100"`
	IncludeAnalysis *bool    `json:"include_analysis"`
}

type batchItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type batchDetectionResponse struct {
	Total   int                          `json:"total"`
	Success int                          `json:"success"`
	Failed  int                          `json:"failed"`
	Results []services.DetectionResponse `json:"results"`
	Errors  []batchItemError             `json:"errors"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// pathID parses the :id segment. It writes the error response itself.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationFailed(c, map[string]string{"id": "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// DetectSingle godoc
// @Summary Classify one text
// @Tags Detection
// @Accept json
// @Produce json
// @Param body body detectionRequest true "Text to classify"
// @Success 200 {object} services.DetectionResponse
// @Failure 422 {object} map[string]any
// @Router /detection/single [post]
// @Security Bearer
func (h *Handler) DetectSingle(c *gin.Context) {
	var req detectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	det, err := h.detections.DetectSingle(c.Request.Context(), user.ID, services.DetectionRequest{
		Content:         req.Content,
		IncludeAnalysis: boolOr(req.IncludeAnalysis, true),
	})
	switch {
	case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrContentTooLong):
		validationFailed(c, map[string]string{"content": err.Error()})
		return
	case err != nil:
		h.internalError(c, "Detection failed", err)
		return
	}

	c.JSON(http.StatusOK, services.ToResponse(det))
}

// DetectBatch godoc
// @Summary Classify up to 100 texts with one model call
// @Description Items that cannot be stored are counted as failed and listed in errors.
// @Tags Detection
// @Accept json
// @Produce json
// @Param body body batchDetectionRequest true "Texts to classify"
// @Success 200 {object} batchDetectionResponse
// @Failure 422 {object} map[string]any
// @Router /detection/batch [post]
// @Security Bearer
func (h *Handler) DetectBatch(c *gin.Context) {
	var req batchDetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	res, err := h.detections.DetectBatch(c.Request.Context(), user.ID, req.Contents, boolOr(req.IncludeAnalysis, true))
	if err != nil {
		h.internalError(c, "Batch detection failed", err)
		return
	}

	resp := batchDetectionResponse{
		Total:   len(req.Contents),
		Success: len(res.Detections),
		Failed:  len(req.Contents) - len(res.Detections),
		Results: make([]services.DetectionResponse, 0, len(res.Detections)),
		Errors:  make([]batchItemError, 0, len(res.Failures)),
	}
	for i := range res.Detections {
		resp.Results = append(resp.Results, services.ToResponse(&res.Detections[i]))
	}
	for _, f := range res.Failures {
		resp.Errors = append(resp.Errors, batchItemError{Index: f.Index, Error: f.Err.Error()})
	}

	c.JSON(http.StatusOK, resp)
}

// GetDetection godoc
// @Summary Get one detection
// @Tags Detection
// @Produce json
// @Param id path string true "Detection ID"
// @Success 200 {object} services.DetectionResponse
// @Failure 404 {object} map[string]any
// @Router /detection/{id} [get]
// @Security Bearer
func (h *Handler) GetDetection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	det, ok := h.loadDetection(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.ToResponse(det))
}

// GetDetectionAnalysis godoc
// @Summary Get the analysis of one detection
// @Tags Detection
// @Produce json
// @Param id path string true "Detection ID"
// @Success 200 {object} services.AnalysisResult
// @Failure 404 {object} map[string]any
// @Router /detection/{id}/analysis [get]
// @Security Bearer
func (h *Handler) GetDetectionAnalysis(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	det, ok := h.loadDetection(c, id)
	if !ok {
		return
	}
	resp := services.ToResponse(det)
	if resp.Analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not available for this detection"})
		return
	}
	c.JSON(http.StatusOK, resp.Analysis)
}

// GetPropagation godoc
// @Summary Get the propagation graph of one detection
// @Tags Detection
// @Produce json
// @Param id path string true "Detection ID"
// @Success 200 {object} services.PropagationResponse
// @Failure 404 {object} map[string]any
// @Router /detection/{id}/propagation [get]
// @Security Bearer
func (h *Handler) GetPropagation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.detections.Propagation(c.Request.Context(), id, middleware.CurrentUser(c).ID)
	switch {
	case errors.Is(err, services.ErrDetectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Detection not found"})
		return
	case err != nil:
		h.internalError(c, "Failed to load propagation", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) loadDetection(c *gin.Context, id uuid.UUID) (*models.Detection, bool) {
	det, err := h.detections.GetByID(c.Request.Context(), id, middleware.CurrentUser(c).ID)
	switch {
	case errors.Is(err, services.ErrDetectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Detection not found"})
		return nil, false
	case err != nil:
		h.internalError(c, "Failed to load detection", err)
		return nil, false
	}
	return det, true
}
