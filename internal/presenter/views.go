// Package presenter turns a submission outcome into one of the three result views.
package presenter

import (
	"strings"

	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/models"
	"wellness-eligibility/internal/submission"
)

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

// Remote status keys after normalisation.
const (
	RemoteApproved    = "approved"
	RemoteSurvey      = "survey"
	RemotePartner     = "nd-pd"
	RemoteNotApproved = "not-approved"
)

// StatusCopy is the fixed display text for a remote status.
type StatusCopy struct {
	Key         string
	Recognized  bool
	Tone        Tone
	Title       string
	Description string
	NextSteps   []string
}

var (
	successSteps = []string{
		"Our team will contact you within 1-2 business days to begin onboarding",
		"We'll provide a benefits package tailored to your workforce",
		"You'll receive implementation support and employee communication materials",
	}
	warningSteps = []string{
		"A specialist will contact you within 2-3 business days to discuss requirements",
		"We'll work together on any additional checks needed",
		"You'll receive updates as we progress through the approval process",
	}
	declinedSteps = []string{
		"If you have questions about the decision, please contact our support team",
		"We'll keep your information on file for future eligibility reviews",
		"Consider reapplying if your business circumstances change significantly",
	}
)

var statusCopies = map[string]StatusCopy{
	RemoteApproved: {
		Tone:        ToneSuccess,
		Title:       "Eligibility Confirmed!",
		Description: "Great news! Your business qualifies for the program. A member of our team will reach out shortly to discuss the next steps.",
		NextSteps:   successSteps,
	},
	RemoteSurvey: {
		Tone:        ToneWarning,
		Title:       "Almost There: Employee Survey Needed",
		Description: "You qualify, but we'll need to survey your eligible employees to understand their preferences before moving forward.",
		NextSteps:   warningSteps,
	},
	RemotePartner: {
		Tone:        ToneWarning,
		Title:       "Pending Partner Confirmation",
		Description: "We'll need to check with our facility partners before we can move forward. Our team will be in touch shortly about the outcome.",
		NextSteps:   warningSteps,
	},
	RemoteNotApproved: {
		Tone:        ToneError,
		Title:       "Not Eligible at This Time",
		Description: "Your business doesn't currently meet the eligibility requirements. We'd be happy to revisit as circumstances change.",
		NextSteps:   declinedSteps,
	},
}

var unrecognizedCopy = StatusCopy{
	Tone:        ToneInfo,
	Title:       "Application Received",
	Description: "Your application has been received and is being processed. A member of our team will reach out shortly.",
	NextSteps:   warningSteps,
}

var statusAliases = map[string]string{
	"needs-partner-decision": RemotePartner,
}

// NormalizeStatus lower-cases and trims s and folds "/", "_" and spaces to "-",
// so "ND/PD" and "Not Approved" match their canonical keys.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("/", "-", "_", "-", " ", "-").Replace(s)
	if canonical, ok := statusAliases[s]; ok {
		return canonical
	}
	return s
}

// StatusDisplay maps a remote status to its copy, falling back to the unrecognized copy.
func StatusDisplay(status string) StatusCopy {
	key := NormalizeStatus(status)
	c, ok := statusCopies[key]
	if !ok {
		c = unrecognizedCopy
	}
	c.Key = key
	c.Recognized = ok
	c.NextSteps = append([]string(nil), c.NextSteps...)
	return c
}

// Summary is the read-back of what the user entered.
type Summary struct {
	Company       string
	BusinessType  string
	Industry      string
	Employees     int
	Locations     int
	Workforce     string
	Communication string
	Goals         int
	ContactName   string
	ContactEmail  string
}

func Summarize(a models.Answers) Summary {
	return Summary{
		Company:       a.CompanyName,
		BusinessType:  string(a.BusinessType),
		Industry:      string(a.IndustryCategory),
		Employees:     a.TotalEmployees,
		Locations:     len(a.Offices) + 1,
		Workforce:     string(a.WorkforceType),
		Communication: models.CommunicationLabel(a.CommunicationStrength),
		Goals:         len(a.WellnessGoals),
		ContactName:   strings.TrimSpace(a.FirstName + " " + a.LastName),
		ContactEmail:  a.WorkEmail,
	}
}

// View is the render-ready result screen.
type View struct {
	Kind    models.ResultView
	Tone    Tone
	Badge   string
	Title   string
	Message string

	// Status view
	RemoteStatus string
	SubmissionID string
	Reason       string
	Notes        []string

	// Local view
	Score           *int
	Factors         []string
	Recommendations []string

	// Network-error view
	Notice *apperrors.Notice

	NextSteps []string
	Summary   Summary
}

var localCopy = map[models.EligibilityStatus]struct {
	tone    Tone
	badge   string
	message string
	next    []string
}{
	models.StatusEligible: {
		ToneSuccess, "ELIGIBLE",
		"Congratulations! Your company is an excellent candidate for our benefits program.",
		[]string{
			"Receive a customized benefits package proposal",
			"Schedule implementation consultation",
			"Begin employee wellness program rollout planning",
		},
	},
	models.StatusMayBeEligible: {
		ToneWarning, "YOU MAY BE ELIGIBLE",
		"Your company shows potential for our benefits program with some adjustments.",
		[]string{
			"Discuss modifications to meet eligibility requirements",
			"Explore pilot program options",
			"Receive program readiness guidance",
		},
	},
	models.StatusNotEligible: {
		ToneError, "NOT ELIGIBLE",
		"Based on current criteria, your company may not be ready for our benefits program at this time.",
		[]string{
			"Receive guidance on building wellness program readiness",
			"Schedule follow-up assessment in 6-12 months",
			"Access alternative wellness solutions for smaller organizations",
		},
	},
}

// Build selects the view for out. The network-error view never carries the local score.
func Build(out *submission.Outcome) View {
	v := View{Kind: out.View, Summary: Summarize(out.Answers)}

	switch out.View {
	case models.ViewStatus:
		status := ""
		if out.Verdict != nil {
			status = out.Verdict.Status
			v.SubmissionID = out.Verdict.SubmissionID
			v.Reason = out.Verdict.Reason
			v.Notes = append([]string(nil), out.Verdict.Notes...)
		}
		c := StatusDisplay(status)
		v.RemoteStatus = c.Key
		v.Tone = c.Tone
		v.Title = c.Title
		v.Message = c.Description
		v.NextSteps = c.NextSteps

	case models.ViewNetworkError:
		v.Tone = ToneWarning
		v.Title = "We're sorry, there has been a technical issue."
		v.Message = "Our tool was unable to verify your information. Please contact us and we'll be happy to discuss your enquiry."
		v.Notice = out.Notice
		v.NextSteps = []string{
			"Contact us to discuss your request",
			"Request a manual verification today",
		}

	default:
		v.Kind = models.ViewLocal
		c, ok := localCopy[out.Local.Status]
		if !ok {
			c = localCopy[models.StatusNotEligible]
		}
		score := out.Local.Score
		v.Tone = c.tone
		v.Badge = c.badge
		v.Title = "Eligibility Assessment Results"
		v.Message = c.message
		v.Score = &score
		v.Factors = append([]string(nil), out.Local.Factors...)
		v.Recommendations = append([]string(nil), out.Local.Recommendations...)
		v.NextSteps = append([]string(nil), c.next...)
	}
	return v
}
