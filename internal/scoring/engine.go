// Package scoring computes the local eligibility verdict from a set of answers.
package scoring

import (
	"fmt"

	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/metrics"
	"wellness-eligibility/internal/models"
)

// Status thresholds on the raw sum.
const (
	EligibleThreshold      = 75
	MayBeEligibleThreshold = 45
)

var recommendations = map[models.EligibilityStatus][]string{
	models.StatusEligible: {
		"Full wellness integration approach",
		"Multi-location rollout strategy",
		"Executive wellness program add-on",
		"Comprehensive employee engagement plan",
	},
	models.StatusMayBeEligible: {
		"Core fitness benefits implementation",
		"Phased implementation approach",
		"Employee engagement workshops",
		"Pilot program for key locations",
	},
	models.StatusNotEligible: {
		"Consider improving internal communication first",
		"Develop clear wellness objectives",
		"Start with basic wellness initiatives",
		"Re-evaluate when company grows or structure changes",
	},
}

// Evaluate scores answers. It has no side effects and returns identical output for identical input.
func Evaluate(a models.Answers) models.EligibilityResult {
	var (
		score   int
		factors = make([]string, 0, 7)
	)
	add := func(points int, factor string) {
		score += points
		factors = append(factors, factor)
	}

	add(employeePoints(a.TotalEmployees))
	add(workforcePoints(a.WorkforceType))
	add(officePoints(len(a.Offices)))
	add(communicationPoints(a.CommunicationStrength))
	add(goalPoints(len(a.WellnessGoals)))
	add(benefitPoints(a.ExistingBenefits, len(a.CurrentBenefits)))
	add(businessPoints(a.BusinessType))

	status := classify(score)
	return models.EligibilityResult{
		Score:           score,
		Status:          status,
		Factors:         factors,
		Recommendations: Recommendations(status),
	}
}

// Recommendations returns a copy of the fixed recommendation list for status.
func Recommendations(status models.EligibilityStatus) []string {
	return append([]string(nil), recommendations[status]...)
}

func classify(score int) models.EligibilityStatus {
	if score >= EligibleThreshold {
		return models.StatusEligible
	} else if score >= MayBeEligibleThreshold {
		return models.StatusMayBeEligible
	}
	return models.StatusNotEligible
}

func employeePoints(total int) (int, string) {
	if total >= 100 {
		return 30, "Large employee base (100+ employees) - Excellent fit"
	} else if total >= 50 {
		return 20, "Medium employee base (50-99 employees) - Good fit"
	} else if total >= 25 {
		return 15, "Small-medium employee base (25-49 employees) - Suitable"
	} else if total >= 10 {
		return 8, "Small employee base (10-24 employees) - May require customized approach"
	}
	return 2, "Very small employee base (under 10) - Limited program viability"
}

func workforcePoints(w models.WorkforceType) (int, string) {
	switch w {
	case models.WorkforceFullTime, models.WorkforceMixed:
		return 20, "Full-time workforce - High engagement potential"
	case models.WorkforcePartTime:
		return 12, "Part-time workforce - May need flexible options"
	default:
		return 5, "Contract/seasonal workforce - Limited program engagement"
	}
}

// officePoints takes the number of secondary offices; the factor counts the head office too.
func officePoints(offices int) (int, string) {
	if offices > 0 {
		return 15, fmt.Sprintf("Multiple locations (%d total) - Good coverage opportunity", offices+1)
	}
	return 0, "Single location - Focused rollout"
}

func communicationPoints(strength int) (int, string) {
	if strength >= 3 {
		return 15, "Good/Great internal communication - High program adoption potential"
	} else if strength == 2 {
		return 10, "OK internal communication - Solid program adoption potential"
	} else if strength == 1 {
		return 5, "Poor communication - May need enhanced rollout support"
	}
	return 0, "No communication structure - Significant implementation challenges"
}

func goalPoints(goals int) (int, string) {
	if goals >= 4 {
		return 20, "Multiple wellness objectives - Comprehensive program needed"
	} else if goals >= 2 {
		return 15, "Clear wellness objectives - Targeted program approach"
	} else if goals == 1 {
		return 8, "Limited wellness objectives - Basic program may suffice"
	}
	return 0, "No clear wellness objectives - Program goals unclear"
}

func benefitPoints(existing models.ExistingBenefits, current int) (int, string) {
	switch existing {
	case models.BenefitsNo:
		return 25, "No existing fitness benefits - Great opportunity for impact"
	case models.BenefitsYes:
		return 10, fmt.Sprintf("Current benefits: %d programs - Integration approach needed", current)
	default:
		return 0, "Existing benefits not specified"
	}
}

func businessPoints(b models.BusinessType) (int, string) {
	switch b {
	case models.BusinessPrivatelyHeld, models.BusinessPublicCompany, models.BusinessEducational:
		return 10, "Business structure supports employee benefits"
	case models.BusinessGovernment, models.BusinessNonProfit:
		return 5, "Business structure may have budget constraints"
	default:
		return 0, "Business structure has limited benefit options"
	}
}

// Engine wraps Evaluate with logging and metrics for use by the submission flow.
type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{logger: logger.ForComponent(log, "scoring")}
}

func (e *Engine) Evaluate(a models.Answers) models.EligibilityResult {
	result := Evaluate(a)

	metrics.LocalScore.Observe(float64(result.Score))
	e.logger.Info("local eligibility computed", map[string]interface{}{
		"score":  result.Score,
		"status": string(result.Status),
	})
	return result
}
