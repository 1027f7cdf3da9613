// internal/models/answers.go
package models

import "strings"

// Form steps, in order.
const (
	StepCompany   = 1
	StepLocations = 2
	StepWorkforce = 3
	StepBenefits  = 4
	StepContact   = 5

	MinStep = StepCompany
	MaxStep = StepContact
)

const (
	DefaultTotalEmployees = 50
	MaxTotalEmployees     = 1500
	MinTotalEmployees     = 1

	// CommunicationUnanswered marks communicationStrength as not yet chosen.
	CommunicationUnanswered = -1
	MaxCommunication        = 4
)

type BusinessType string

const (
	BusinessPrivatelyHeld BusinessType = "privately-held"
	BusinessPublicCompany BusinessType = "public-company"
	BusinessEducational   BusinessType = "educational"
	BusinessGovernment    BusinessType = "government-agency"
	BusinessNonProfit     BusinessType = "non-profit"
	BusinessSelfOwned     BusinessType = "self-owned"
	BusinessPartnership   BusinessType = "partnership"
)

var BusinessTypes = []BusinessType{
	BusinessPrivatelyHeld, BusinessPublicCompany, BusinessEducational,
	BusinessGovernment, BusinessNonProfit, BusinessSelfOwned, BusinessPartnership,
}

type IndustryCategory string

// IndustryCategories follows the ANZSIC divisions, in division order.
var IndustryCategories = []IndustryCategory{
	"agriculture",
	"mining",
	"manufacturing",
	"electricity",
	"construction",
	"wholesale",
	"retail",
	"accommodation",
	"transport",
	"information",
	"financial",
	"rental",
	"professional",
	"administrative",
	"public",
	"education",
	"healthcare",
	"arts",
	"other-services",
}

type WorkforceType string

const (
	WorkforceFullTime WorkforceType = "full-time"
	WorkforcePartTime WorkforceType = "part-time"
	WorkforceMixed    WorkforceType = "mixed"
	WorkforceContract WorkforceType = "contract"
	WorkforceSeasonal WorkforceType = "seasonal"
)

var WorkforceTypes = []WorkforceType{
	WorkforceFullTime, WorkforcePartTime, WorkforceMixed, WorkforceContract, WorkforceSeasonal,
}

// WellnessGoalOptions and CurrentBenefitOptions are the tags offered by the form.
// Stored sets are not restricted to them.
var (
	WellnessGoalOptions = []string{
		"improve-engagement",
		"address-stress",
		"boost-retention",
		"enhance-recruitment",
		"work-life-balance",
		"company-culture",
		"corporate-requirements",
		"demonstrate-care",
		"boost-productivity",
		"reduce-injuries",
	}
	CurrentBenefitOptions = []string{
		"corporate-fitness",
		"gym-reimbursement",
		"onsite-facilities",
		"health-screenings",
		"eap-mental-health",
		"nutrition-programs",
		"health-coaching",
		"other-wellbeing",
	}
)

// ExistingBenefits is "yes", "no" or empty when unanswered.
type ExistingBenefits string

const (
	BenefitsUnset ExistingBenefits = ""
	BenefitsYes   ExistingBenefits = "yes"
	BenefitsNo    ExistingBenefits = "no"
)

var communicationLabels = []string{"None", "Poor", "OK", "Good", "Great"}

// CommunicationLabel returns the display label for 0..4, or "" when unanswered or out of range.
func CommunicationLabel(strength int) string {
	if strength < 0 || strength >= len(communicationLabels) {
		return ""
	}
	return communicationLabels[strength]
}

// Office is a secondary location. Employees is nil until entered.
type Office struct {
	Postal    string `json:"postal"`
	City      string `json:"city"`
	State     string `json:"state"`
	Employees *int   `json:"employees"`
}

// Answers is the full in-progress form record.
type Answers struct {
	// Company
	CompanyName      string           `json:"companyName"`
	BusinessType     BusinessType     `json:"businessType"`
	IndustryCategory IndustryCategory `json:"industryCategory"`

	// Locations
	HQPostalCode string   `json:"hqPostalCode"`
	HQCity       string   `json:"hqCity"`
	HQState      string   `json:"hqState"`
	HQEmployees  *int     `json:"hqEmployees"`
	Offices      []Office `json:"offices"`

	// Workforce
	TotalEmployees        int           `json:"totalEmployees"`
	WorkforceType         WorkforceType `json:"workforceType"`
	CommunicationStrength int           `json:"communicationStrength"`

	// Benefits
	WellnessGoals    []string         `json:"wellnessGoals"`
	ExistingBenefits ExistingBenefits `json:"existingBenefits"`
	CurrentBenefits  []string         `json:"currentBenefits"`

	// Contact
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	JobTitle    string `json:"jobTitle"`
	WorkEmail   string `json:"workEmail"`
	PhoneNumber string `json:"phoneNumber"`
}

// DefaultAnswers is the record a fresh session starts from.
func DefaultAnswers() Answers {
	return Answers{
		Offices:               []Office{},
		TotalEmployees:        DefaultTotalEmployees,
		CommunicationStrength: CommunicationUnanswered,
		WellnessGoals:         []string{},
		CurrentBenefits:       []string{},
	}
}

// IsMeaningful reports whether the user has entered enough to be worth saving.
func (a Answers) IsMeaningful() bool {
	return strings.TrimSpace(a.CompanyName) != "" ||
		a.BusinessType != "" ||
		strings.TrimSpace(a.FirstName) != "" ||
		strings.TrimSpace(a.WorkEmail) != ""
}

// LocationEmployees sums hqEmployees and every office's employees, counting unset as zero.
func (a Answers) LocationEmployees() int {
	total := 0
	if a.HQEmployees != nil {
		total += *a.HQEmployees
	}
	for _, o := range a.Offices {
		if o.Employees != nil {
			total += *o.Employees
		}
	}
	return total
}

// Clone returns a deep copy; nil slices come back empty.
func (a Answers) Clone() Answers {
	out := a
	out.HQEmployees = cloneInt(a.HQEmployees)

	out.Offices = make([]Office, len(a.Offices))
	for i, o := range a.Offices {
		o.Employees = cloneInt(o.Employees)
		out.Offices[i] = o
	}
	out.WellnessGoals = append([]string{}, a.WellnessGoals...)
	out.CurrentBenefits = append([]string{}, a.CurrentBenefits...)
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr is a convenience for building optional counts.
func IntPtr(n int) *int {
	return &n
}

func IsBusinessType(v string) bool {
	for _, b := range BusinessTypes {
		if string(b) == v {
			return true
		}
	}
	return false
}

func IsIndustryCategory(v string) bool {
	for _, c := range IndustryCategories {
		if string(c) == v {
			return true
		}
	}
	return false
}

func IsWorkforceType(v string) bool {
	for _, w := range WorkforceTypes {
		if string(w) == v {
			return true
		}
	}
	return false
}
