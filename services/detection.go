package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"rumor-detection/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrDetectionNotFound = errors.New("detection not found")
	ErrAnalysisNotFound  = errors.New("analysis not available for this detection")
	ErrEmptyContent      = errors.New("content is empty")
	ErrContentTooLong    = fmt.Errorf("content exceeds %d characters", MaxContentRunes)
)

// errSavepoint marks a batch item whose savepoint could not be taken or
// restored. The batch transaction is no longer safe to commit.
var errSavepoint = errors.New("batch savepoint failed")

// MaxContentRunes bounds the length of a single submission.
const MaxContentRunes = 5000

type DetectionRequest struct {
	Content         string
	IncludeAnalysis bool
}

// AnalysisResult is the read-side view of a Detection's Analysis.
type AnalysisResult struct {
	Keywords        []string `json:"keywords"`
	Sentiment       string   `json:"sentiment"`
	Category        string   `json:"category"`
	Sources         []string `json:"sources"`
	FactCheckPoints []string `json:"fact_check_points"`
	RiskIndicators  []string `json:"risk_indicators"`
}

type DetectionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Content     string           `json:"content"`
	IsRumor     bool             `json:"is_rumor"`
	Confidence  float64          `json:"confidence"`
	RiskLevel   models.RiskLevel `json:"risk_level"`
	Explanation string           `json:"explanation"`
	Analysis    *AnalysisResult  `json:"analysis"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ItemFailure records why one batch item was not stored.
type ItemFailure struct {
	Index int
	Err   error
}

// BatchResult holds the stored detections in input order and the items that
// were skipped.
type BatchResult struct {
	Detections []models.Detection
	Failures   []ItemFailure
}

type ListFilter struct {
	Page      int
	PageSize  int
	IsRumor   *bool
	RiskLevel models.RiskLevel
	StartDate *time.Time
	EndDate   *time.Time
}

type PropagationNode struct {
	NodeID     string          `json:"node_id"`
	ParentID   *string         `json:"parent_id"`
	Content    *string         `json:"content"`
	UserInfo   json.RawMessage `json:"user_info"`
	Engagement json.RawMessage `json:"engagement"`
	Timestamp  *time.Time      `json:"timestamp"`
}

// PropagationResponse describes how a detection spread. The derived fields
// stay nil until something records propagation data.
type PropagationResponse struct {
	DetectionID    uuid.UUID         `json:"detection_id"`
	Nodes          []PropagationNode `json:"nodes"`
	Pattern        *string           `json:"pattern"`
	SpreadSpeed    *string           `json:"spread_speed"`
	EstimatedReach *int              `json:"estimated_reach"`
	InfluenceScore *float64          `json:"influence_score"`
}

// rawPayload is what Detection.RawResponse stores for audit.
type rawPayload struct {
	DetectionResult
	Degraded bool   `json:"degraded,omitempty"`
	Cause    string `json:"cause,omitempty"`
}

type DetectionService struct {
	db         *gorm.DB
	classifier Classifier
	log        *slog.Logger
}

func NewDetectionService(db *gorm.DB, classifier Classifier, log *slog.Logger) *DetectionService {
	if log == nil {
		log = slog.Default()
	}
	return &DetectionService{
		db:         db,
		classifier: classifier,
		log:        log.With("component", "detection"),
	}
}

// DetectSingle classifies one text and stores the detection, plus its
// analysis when requested, in one transaction.
func (s *DetectionService) DetectSingle(ctx context.Context, userID uuid.UUID, req DetectionRequest) (*models.Detection, error) {
	if err := checkContent(req.Content); err != nil {
		return nil, err
	}

	outcome := s.classifier.Classify(ctx, req.Content)
	det, analysis, err := newDetection(userID, req.Content, outcome, req.IncludeAnalysis)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(det).Error; err != nil {
			return err
		}
		if analysis != nil {
			analysis.DetectionID = det.ID
			return tx.Create(analysis).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save detection: %w", err)
	}

	return s.GetByID(ctx, det.ID, userID)
}

// DetectBatch classifies all contents with a single provider call. Items
// that cannot be stored are skipped and reported in Failures; the rest are
// committed together.
func (s *DetectionService) DetectBatch(ctx context.Context, userID uuid.UUID, contents []string, includeAnalysis bool) (*BatchResult, error) {
	result := &BatchResult{Detections: []models.Detection{}}
	if len(contents) == 0 {
		return result, nil
	}

	outcomes := s.classifier.ClassifyBatch(ctx, contents)

	var staged []uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, content := range contents {
			outcome := degraded(errors.New("classifier returned no outcome for item"))
			if i < len(outcomes) {
				outcome = outcomes[i]
			}

			id, err := stageItem(tx, i, userID, content, outcome, includeAnalysis)
			if errors.Is(err, errSavepoint) {
				return err
			}
			if err != nil {
				s.log.Warn("skipping batch item", "index", i, "error", err)
				result.Failures = append(result.Failures, ItemFailure{Index: i, Err: err})
				continue
			}
			staged = append(staged, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}

	if len(staged) == 0 {
		return result, nil
	}

	var found []models.Detection
	if err := s.db.WithContext(ctx).
		Preload("Analysis").
		Where("id IN ?", staged).
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("reload batch: %w", err)
	}

	byID := make(map[uuid.UUID]models.Detection, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}
	for _, id := range staged {
		if d, ok := byID[id]; ok {
			result.Detections = append(result.Detections, d)
		}
	}
	return result, nil
}

func stageItem(tx *gorm.DB, index int, userID uuid.UUID, content string, outcome ClassifyOutcome, includeAnalysis bool) (uuid.UUID, error) {
	if err := checkContent(content); err != nil {
		return uuid.Nil, err
	}

	det, analysis, err := newDetection(userID, content, outcome, includeAnalysis)
	if err != nil {
		return uuid.Nil, err
	}

	sp := fmt.Sprintf("batch_item_%d", index)
	if err := tx.SavePoint(sp).Error; err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", errSavepoint, err)
	}
	if err := tx.Create(det).Error; err != nil {
		return uuid.Nil, rollbackItem(tx, sp, err)
	}
	if analysis != nil {
		analysis.DetectionID = det.ID
		if err := tx.Create(analysis).Error; err != nil {
			return uuid.Nil, rollbackItem(tx, sp, err)
		}
	}
	return det.ID, nil
}

// rollbackItem undoes a partially staged item. If the savepoint cannot be
// restored the error wraps errSavepoint and the whole batch must abort.
func rollbackItem(tx *gorm.DB, sp string, cause error) error {
	if err := tx.RollbackTo(sp).Error; err != nil {
		return fmt.Errorf("%w: rollback to %s: %w (after %v)", errSavepoint, sp, err, cause)
	}
	return cause
}

func checkContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentRunes {
		return ErrContentTooLong
	}
	return nil
}

// newDetection builds the rows for one outcome. The risk level comes from the
// model's confidence before it is rounded for storage.
func newDetection(userID uuid.UUID, content string, outcome ClassifyOutcome, includeAnalysis bool) (*models.Detection, *models.Analysis, error) {
	res := outcome.Result
	payload := rawPayload{DetectionResult: res, Degraded: outcome.Degraded}
	if outcome.Cause != nil {
		payload.Cause = outcome.Cause.Error()
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encode raw response: %w", err)
	}

	det := &models.Detection{
		UserID:      userID,
		Content:     content,
		IsRumor:     res.IsRumor,
		Confidence:  roundConfidence(res.Confidence),
		RiskLevel:   RiskLevelFor(clampConfidence(res.Confidence), res.IsRumor),
		Explanation: res.Explanation,
		RawResponse: datatypes.JSON(raw),
	}

	if !includeAnalysis {
		return det, nil, nil
	}
	analysis := &models.Analysis{
		Keywords:        datatypes.JSONSlice[string](nonNil(res.Keywords)),
		Sentiment:       res.Sentiment,
		Category:        res.Category,
		Sources:         datatypes.JSONSlice[string]{},
		FactCheckPoints: datatypes.JSONSlice[string](nonNil(res.FactCheckPoints)),
	}
	return det, analysis, nil
}

func roundConfidence(c float64) float64 {
	return math.Round(clampConfidence(c)*10000) / 10000
}

// GetByID loads a detection owned by userID. A detection owned by someone
// else is reported exactly like a missing one.
func (s *DetectionService) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Detection, error) {
	var det models.Detection
	err := s.db.WithContext(ctx).
		Preload("Analysis").
		Where("id = ? AND user_id = ?", id, userID).
		First(&det).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDetectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load detection: %w", err)
	}
	return &det, nil
}

// List returns one page of the user's detections, newest first, and the
// number of detections matching the filter.
func (s *DetectionService) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]models.Detection, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}

	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Detection{}).Where("user_id = ?", userID)
		if f.IsRumor != nil {
			q = q.Where("is_rumor = ?", *f.IsRumor)
		}
		if f.RiskLevel != "" {
			q = q.Where("risk_level = ?", f.RiskLevel)
		}
		if f.StartDate != nil {
			q = q.Where("created_at >= ?", f.StartDate.UTC())
		}
		if f.EndDate != nil {
			q = q.Where("created_at <= ?", f.EndDate.UTC())
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count detections: %w", err)
	}

	items := []models.Detection{}
	if err := scoped().
		Preload("Analysis").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list detections: %w", err)
	}
	return items, total, nil
}

// Delete removes one detection with its analysis and propagation nodes.
// It reports false when the detection does not exist or is not owned.
func (s *DetectionService) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var det models.Detection
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&det).Error
		if err != nil {
			return err
		}
		return tx.Select("Analysis", "PropagationNodes").Delete(&det).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete detection: %w", err)
	}
	return true, nil
}

// DeleteBatch deletes each id independently and returns how many were
// removed. Missing, foreign and failing ids are skipped.
func (s *DetectionService) DeleteBatch(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) int {
	deleted := 0
	for _, id := range ids {
		ok, err := s.Delete(ctx, id, userID)
		if err != nil {
			s.log.Warn("batch delete item failed", "detection_id", id, "error", err)
			continue
		}
		if ok {
			deleted++
		}
	}
	return deleted
}

// Propagation returns the recorded spread graph for a detection.
func (s *DetectionService) Propagation(ctx context.Context, id, userID uuid.UUID) (*PropagationResponse, error) {
	var det models.Detection
	err := s.db.WithContext(ctx).
		Preload("PropagationNodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&det).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDetectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load propagation: %w", err)
	}

	nodes := make([]PropagationNode, 0, len(det.PropagationNodes))
	for _, n := range det.PropagationNodes {
		nodes = append(nodes, PropagationNode{
			NodeID:     n.NodeID,
			ParentID:   n.ParentID,
			Content:    n.Content,
			UserInfo:   jsonOrNull(n.UserInfo),
			Engagement: jsonOrNull(n.Engagement),
			Timestamp:  n.Timestamp,
		})
	}
	return &PropagationResponse{DetectionID: det.ID, Nodes: nodes}, nil
}

func jsonOrNull(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(j)
}

// ToResponse projects a stored detection. It reads only the row and its
// loaded analysis, so repeated calls give identical output.
func ToResponse(det *models.Detection) DetectionResponse {
	resp := DetectionResponse{
		ID:          det.ID,
		Content:     det.Content,
		IsRumor:     det.IsRumor,
		Confidence:  roundConfidence(det.Confidence),
		RiskLevel:   det.RiskLevel,
		Explanation: det.Explanation,
		CreatedAt:   det.CreatedAt,
	}

	if a := det.Analysis; a != nil {
		sentiment, category := a.Sentiment, a.Category
		if sentiment == "" {
			sentiment = "neutral"
		}
		if category == "" {
			category = "other"
		}
		resp.Analysis = &AnalysisResult{
			Keywords:        nonNil(a.Keywords),
			Sentiment:       sentiment,
			Category:        category,
			Sources:         nonNil(a.Sources),
			FactCheckPoints: nonNil(a.FactCheckPoints),
			RiskIndicators:  riskIndicators(det.RawResponse),
		}
	}
	return resp
}

// riskIndicators recovers the indicators from the stored raw payload; the
// analysis row does not keep them.
func riskIndicators(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var payload struct {
		RiskIndicators []string `json:"risk_indicators"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return []string{}
	}
	return nonNil(payload.RiskIndicators)
}
