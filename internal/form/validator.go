// internal/form/validator.go
package form

import (
	"fmt"
	"strings"

	"wellness-eligibility/internal/common/validation"
	"wellness-eligibility/internal/models"
)

// personalEmailDomains are consumer providers that are not accepted as a work email.
var personalEmailDomains = map[string]struct{}{
	"gmail.com":        {},
	"yahoo.com":        {},
	"outlook.com":      {},
	"hotmail.com":      {},
	"live.com":         {},
	"msn.com":          {},
	"icloud.com":       {},
	"me.com":           {},
	"mac.com":          {},
	"aol.com":          {},
	"mail.com":         {},
	"protonmail.com":   {},
	"zoho.com":         {},
	"gmx.com":          {},
	"inbox.com":        {},
	"hushmail.com":     {},
	"fastmail.com":     {},
	"bigpond.com":      {},
	"bigpond.net.au":   {},
	"optusnet.com.au":  {},
	"iinet.net.au":     {},
	"tpg.com.au":       {},
	"dodo.com.au":      {},
	"aapt.net.au":      {},
	"internode.on.net": {},
}

// IsPersonalEmailDomain reports whether the address belongs to a consumer provider.
func IsPersonalEmailDomain(email string) bool {
	_, ok := personalEmailDomains[validation.EmailDomain(email)]
	return ok
}

// IsWorkEmail is a syntactically valid address outside the consumer deny-list.
func IsWorkEmail(email string) bool {
	email = strings.TrimSpace(email)
	return validation.ValidateEmail(email) && !IsPersonalEmailDomain(email)
}

// ValidateStep is the gate for forward navigation. It answers only yes or no.
func ValidateStep(step int, a models.Answers) bool {
	switch step {
	case models.StepCompany:
		return filled(a.CompanyName) && a.BusinessType != "" && a.IndustryCategory != ""
	case models.StepLocations:
		return filled(a.HQPostalCode) && filled(a.HQCity) && filled(a.HQState) &&
			a.HQEmployees != nil && *a.HQEmployees >= 0
	case models.StepWorkforce:
		return a.WorkforceType != "" && a.CommunicationStrength >= 0
	case models.StepBenefits:
		return a.ExistingBenefits == models.BenefitsYes || a.ExistingBenefits == models.BenefitsNo
	case models.StepContact:
		return filled(a.FirstName) && filled(a.LastName) && filled(a.JobTitle) &&
			filled(a.PhoneNumber) && IsWorkEmail(a.WorkEmail)
	default:
		return false
	}
}

// ValidateSubmission checks every step at once and reports each failing rule,
// including numeric ranges and the location head-count invariant.
func ValidateSubmission(a models.Answers) *validation.ValidationResult {
	res := validation.NewResult()

	// Company
	required(res, "companyName", a.CompanyName, "Company name is required")
	switch {
	case a.BusinessType == "":
		res.Add("businessType", validation.CodeMissingRequired, "Business type is required")
	case !models.IsBusinessType(string(a.BusinessType)):
		res.Add("businessType", validation.CodeInvalidValue, "Business type is not recognised")
	}
	switch {
	case a.IndustryCategory == "":
		res.Add("industryCategory", validation.CodeMissingRequired, "Industry is required")
	case !models.IsIndustryCategory(string(a.IndustryCategory)):
		res.Add("industryCategory", validation.CodeInvalidValue, "Industry is not recognised")
	}

	// Locations
	required(res, "hqPostalCode", a.HQPostalCode, "Head office postcode is required")
	required(res, "hqCity", a.HQCity, "Head office city is required")
	required(res, "hqState", a.HQState, "Head office state is required")
	switch {
	case a.HQEmployees == nil:
		res.Add("hqEmployees", validation.CodeMissingRequired, "Head office employee count is required")
	case *a.HQEmployees < 0:
		res.Add("hqEmployees", validation.CodeInvalidValue, "Head office employee count must be 0 or more")
	}
	for i, o := range a.Offices {
		if o.Employees != nil && *o.Employees < 0 {
			res.Add(fmt.Sprintf("offices[%d].employees", i), validation.CodeInvalidValue,
				fmt.Sprintf("Office %d employee count must be 0 or more", i+1))
		}
	}

	// Workforce
	if a.TotalEmployees < models.MinTotalEmployees || a.TotalEmployees > models.MaxTotalEmployees {
		res.Add("totalEmployees", validation.CodeInvalidValue,
			fmt.Sprintf("Total employees must be between %d and %d", models.MinTotalEmployees, models.MaxTotalEmployees))
	}
	switch {
	case a.WorkforceType == "":
		res.Add("workforceType", validation.CodeMissingRequired, "Workforce type is required")
	case !models.IsWorkforceType(string(a.WorkforceType)):
		res.Add("workforceType", validation.CodeInvalidValue, "Workforce type is not recognised")
	}
	if a.CommunicationStrength < 0 || a.CommunicationStrength > models.MaxCommunication {
		res.Add("communicationStrength", validation.CodeInvalidValue, "Please rate internal communication")
	}

	// Benefits
	if a.ExistingBenefits != models.BenefitsYes && a.ExistingBenefits != models.BenefitsNo {
		res.Add("existingBenefits", validation.CodeMissingRequired, "Please tell us whether you offer wellness benefits")
	}

	// Contact
	required(res, "firstName", a.FirstName, "First name is required")
	required(res, "lastName", a.LastName, "Last name is required")
	required(res, "jobTitle", a.JobTitle, "Job title is required")
	required(res, "phoneNumber", a.PhoneNumber, "Phone number is required")
	switch email := strings.TrimSpace(a.WorkEmail); {
	case email == "":
		res.Add("workEmail", validation.CodeMissingRequired, "Work email is required")
	case !validation.ValidateEmail(email):
		res.Add("workEmail", validation.CodeInvalidFormat, "Work email is not a valid address")
	case IsPersonalEmailDomain(email):
		res.Add("workEmail", validation.CodeInvalidValue, "Please use your work email rather than a personal address")
	}

	// Cross-field
	if located := a.LocationEmployees(); located > a.TotalEmployees {
		res.Add("totalEmployees", validation.CodeInvariantViolate,
			fmt.Sprintf("Employees across locations (%d) exceed total employees (%d)", located, a.TotalEmployees))
	}

	return res
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func required(res *validation.ValidationResult, field, value, message string) {
	if !filled(value) {
		res.Add(field, validation.CodeMissingRequired, message)
	}
}
