package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RiskLevel is the ordinal severity derived from a verdict and its confidence.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevels lists every level from least to most severe.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Detection is one persisted classification of a single text submission.
// Rows are immutable once written.
type Detection struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	IsRumor     bool           `json:"is_rumor" gorm:"not null"`
	Confidence  float64        `json:"confidence" gorm:"type:decimal(5,4);not null"`
	RiskLevel   RiskLevel      `json:"risk_level" gorm:"type:varchar(20);not null;index"`
	Explanation string         `json:"explanation" gorm:"type:text"`
	RawResponse datatypes.JSON `json:"raw_response"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`

	Analysis         *Analysis         `json:"analysis,omitempty" gorm:"foreignKey:DetectionID;constraint:OnDelete:CASCADE"`
	PropagationNodes []PropagationNode `json:"propagation_nodes,omitempty" gorm:"foreignKey:DetectionID;constraint:OnDelete:CASCADE"`
}

func (d *Detection) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Analysis is the optional enrichment attached to a Detection.
type Analysis struct {
	ID              uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	DetectionID     uuid.UUID                   `json:"detection_id" gorm:"type:uuid;not null;uniqueIndex"`
	Keywords        datatypes.JSONSlice[string] `json:"keywords"`
	Sentiment       string                      `json:"sentiment" gorm:"type:varchar(20)"`
	Category        string                      `json:"category" gorm:"type:varchar(50)"`
	Sources         datatypes.JSONSlice[string] `json:"sources"`
	FactCheckPoints datatypes.JSONSlice[string] `json:"fact_check_points"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func (a *Analysis) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// PropagationNode is a spread-graph node. Nothing in this service writes
// these rows yet; the read path only reports what is stored.
type PropagationNode struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	DetectionID uuid.UUID      `json:"detection_id" gorm:"type:uuid;not null;index"`
	NodeID      string         `json:"node_id" gorm:"type:varchar(100);not null"`
	ParentID    *string        `json:"parent_id" gorm:"type:varchar(100)"`
	Content     *string        `json:"content" gorm:"type:text"`
	UserInfo    datatypes.JSON `json:"user_info"`
	Engagement  datatypes.JSON `json:"engagement"`
	Timestamp   *time.Time     `json:"timestamp"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (p *PropagationNode) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
