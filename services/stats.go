package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"rumor-detection/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OverviewStats struct {
	TotalDetections int64   `json:"total_detections"`
	TotalRumors     int64   `json:"total_rumors"`
	TotalVerified   int64   `json:"total_verified"`
	RumorRate       float64 `json:"rumor_rate"`
	AvgConfidence   float64 `json:"avg_confidence"`
}

type TrendPoint struct {
	Date     string `json:"date"`
	Rumors   int64  `json:"rumors"`
	Verified int64  `json:"verified"`
	Total    int64  `json:"total"`
}

type TrendResponse struct {
	Data   []TrendPoint `json:"data"`
	Period string       `json:"period"`
}

type CategoryStat struct {
	Category   string  `json:"category"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type CategoryResponse struct {
	Data  []CategoryStat `json:"data"`
	Total int64          `json:"total"`
}

type KeywordStat struct {
	Keyword string  `json:"keyword"`
	Count   int64   `json:"count"`
	Weight  float64 `json:"weight"`
}

type KeywordsResponse struct {
	Data          []KeywordStat `json:"data"`
	TotalKeywords int           `json:"total_keywords"`
}

type RiskDistribution struct {
	Low      int64 `json:"low"`
	Medium   int64 `json:"medium"`
	High     int64 `json:"high"`
	Critical int64 `json:"critical"`
}

type RiskDistributionResponse struct {
	Distribution RiskDistribution `json:"distribution"`
	Total        int64            `json:"total"`
}

type HistoryStats struct {
	TotalRecords  int64            `json:"total_records"`
	RumorsCount   int64            `json:"rumors_count"`
	VerifiedCount int64            `json:"verified_count"`
	ByRiskLevel   RiskDistribution `json:"by_risk_level"`
}

// StatsService computes dashboard statistics from stored detections on
// every call. Nothing is cached.
type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

func (s *StatsService) userDetections(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Detection{}).Where("user_id = ?", userID)
}

func (s *StatsService) Overview(ctx context.Context, userID uuid.UUID) (*OverviewStats, error) {
	var stats OverviewStats

	if err := s.userDetections(ctx, userID).Count(&stats.TotalDetections).Error; err != nil {
		return nil, fmt.Errorf("count detections: %w", err)
	}
	if err := s.userDetections(ctx, userID).Where("is_rumor = ?", true).Count(&stats.TotalRumors).Error; err != nil {
		return nil, fmt.Errorf("count rumors: %w", err)
	}
	stats.TotalVerified = stats.TotalDetections - stats.TotalRumors

	if stats.TotalDetections > 0 {
		stats.RumorRate = float64(stats.TotalRumors) / float64(stats.TotalDetections)
	}

	var avg sql.NullFloat64
	if err := s.userDetections(ctx, userID).Select("AVG(confidence)").Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("average confidence: %w", err)
	}
	stats.AvgConfidence = 0.5
	if avg.Valid {
		stats.AvgConfidence = avg.Float64
	}

	return &stats, nil
}

// Trend returns one point per UTC calendar day for the last days days,
// ending today, oldest first. Days without detections are zero.
func (s *StatsService) Trend(ctx context.Context, userID uuid.UUID, days int) (*TrendResponse, error) {
	if days < 1 {
		days = 1
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))

	var rows []struct {
		IsRumor   bool
		CreatedAt time.Time
	}
	if err := s.userDetections(ctx, userID).
		Select("is_rumor", "created_at").
		Where("created_at >= ?", start).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load trend: %w", err)
	}

	points := make([]TrendPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		points[i] = TrendPoint{Date: date}
		index[date] = i
	}

	for _, r := range rows {
		i, ok := index[r.CreatedAt.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		points[i].Total++
		if r.IsRumor {
			points[i].Rumors++
		} else {
			points[i].Verified++
		}
	}

	return &TrendResponse{Data: points, Period: "daily"}, nil
}

func (s *StatsService) Categories(ctx context.Context, userID uuid.UUID) (*CategoryResponse, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Analysis{}).
		Select("analyses.category AS category, COUNT(*) AS count").
		Joins("JOIN detections ON detections.id = analyses.detection_id").
		Where("detections.user_id = ?", userID).
		Group("analyses.category").
		Order("count DESC, category ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}

	var total int64
	for _, r := range rows {
		total += r.Count
	}

	resp := &CategoryResponse{Data: make([]CategoryStat, 0, len(rows)), Total: total}
	for _, r := range rows {
		category := r.Category
		if category == "" {
			category = "other"
		}
		stat := CategoryStat{Category: category, Count: r.Count}
		if total > 0 {
			stat.Percentage = float64(r.Count) / float64(total) * 100
		}
		resp.Data = append(resp.Data, stat)
	}
	return resp, nil
}

// Keywords counts every keyword across the user's analyses and returns the
// top limit. Weight is relative to the most frequent keyword.
func (s *StatsService) Keywords(ctx context.Context, userID uuid.UUID, limit int) (*KeywordsResponse, error) {
	var analyses []models.Analysis
	if err := s.db.WithContext(ctx).
		Select("analyses.keywords").
		Joins("JOIN detections ON detections.id = analyses.detection_id").
		Where("detections.user_id = ?", userID).
		Find(&analyses).Error; err != nil {
		return nil, fmt.Errorf("keyword stats: %w", err)
	}

	counts := make(map[string]int64)
	for _, a := range analyses {
		for _, k := range a.Keywords {
			counts[k]++
		}
	}

	stats := make([]KeywordStat, 0, len(counts))
	for k, c := range counts {
		stats = append(stats, KeywordStat{Keyword: k, Count: c})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Keyword < stats[j].Keyword
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}

	if len(stats) > 0 {
		top := float64(stats[0].Count)
		for i := range stats {
			stats[i].Weight = float64(stats[i].Count) / top
		}
	}

	return &KeywordsResponse{Data: stats, TotalKeywords: len(counts)}, nil
}

func (s *StatsService) RiskDistribution(ctx context.Context, userID uuid.UUID) (*RiskDistributionResponse, error) {
	dist, total, err := s.riskCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &RiskDistributionResponse{Distribution: dist, Total: total}, nil
}

func (s *StatsService) HistoryStats(ctx context.Context, userID uuid.UUID) (*HistoryStats, error) {
	dist, total, err := s.riskCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rumors int64
	if err := s.userDetections(ctx, userID).Where("is_rumor = ?", true).Count(&rumors).Error; err != nil {
		return nil, fmt.Errorf("count rumors: %w", err)
	}

	return &HistoryStats{
		TotalRecords:  total,
		RumorsCount:   rumors,
		VerifiedCount: total - rumors,
		ByRiskLevel:   dist,
	}, nil
}

func (s *StatsService) riskCounts(ctx context.Context, userID uuid.UUID) (RiskDistribution, int64, error) {
	var rows []struct {
		RiskLevel models.RiskLevel
		Count     int64
	}
	if err := s.userDetections(ctx, userID).
		Select("risk_level, COUNT(*) AS count").
		Group("risk_level").
		Scan(&rows).Error; err != nil {
		return RiskDistribution{}, 0, fmt.Errorf("risk distribution: %w", err)
	}

	var dist RiskDistribution
	var total int64
	for _, r := range rows {
		total += r.Count
		switch r.RiskLevel {
		case models.RiskLow:
			dist.Low = r.Count
		case models.RiskMedium:
			dist.Medium = r.Count
		case models.RiskHigh:
			dist.High = r.Count
		case models.RiskCritical:
			dist.Critical = r.Count
		}
	}
	return dist, total, nil
}
