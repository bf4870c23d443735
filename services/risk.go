package services

import "rumor-detection/models"

// RiskLevelFor maps a verdict to a risk level. Non-rumors are always low.
// For rumors risk rises as confidence in the content falls; each band is
// closed on its lower bound.
func RiskLevelFor(confidence float64, isRumor bool) models.RiskLevel {
	if !isRumor {
		return models.RiskLow
	}

	switch {
	case confidence >= 0.8:
		return models.RiskLow
	case confidence >= 0.6:
		return models.RiskMedium
	case confidence >= 0.4:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}
