// internal/models/result.go
package models

type EligibilityStatus string

const (
	StatusEligible      EligibilityStatus = "eligible"
	StatusMayBeEligible EligibilityStatus = "may-be-eligible"
	StatusNotEligible   EligibilityStatus = "not-eligible"
)

// EligibilityResult is the locally computed verdict. Score is the raw additive sum and may exceed 100.
type EligibilityResult struct {
	Score           int               `json:"score"`
	Status          EligibilityStatus `json:"status"`
	Factors         []string          `json:"factors"`
	Recommendations []string          `json:"recommendations"`
}

// RemoteVerdict is what the scoring API decided. SubmissionID is generated locally for display.
type RemoteVerdict struct {
	Status       string   `json:"status"`
	SubmissionID string   `json:"submissionId"`
	Reason       string   `json:"reason,omitempty"`
	Notes        []string `json:"notes,omitempty"`
}

// ResultView names the result screen shown after a submission.
type ResultView string

const (
	ViewStatus       ResultView = "status"
	ViewNetworkError ResultView = "network-error"
	ViewLocal        ResultView = "local"
)
