package form

import (
	"testing"

	"wellness-eligibility/internal/common/validation"
	"wellness-eligibility/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeAnswers passes every step.
func completeAnswers() models.Answers {
	a := models.DefaultAnswers()
	a.CompanyName = "Acme Pty Ltd"
	a.BusinessType = models.BusinessPrivatelyHeld
	a.IndustryCategory = "information"
	a.HQPostalCode = "2000"
	a.HQCity = "Sydney"
	a.HQState = "NSW"
	a.HQEmployees = models.IntPtr(60)
	a.Offices = []models.Office{
		{Postal: "3000", City: "Melbourne", State: "VIC", Employees: models.IntPtr(30)},
		{Postal: "4000", City: "Brisbane", State: "QLD", Employees: models.IntPtr(20)},
	}
	a.TotalEmployees = 110
	a.WorkforceType = models.WorkforceFullTime
	a.CommunicationStrength = 3
	a.WellnessGoals = []string{"reduce-stress", "improve-fitness"}
	a.ExistingBenefits = models.BenefitsNo
	a.FirstName = "Jane"
	a.LastName = "Citizen"
	a.JobTitle = "People Lead"
	a.WorkEmail = "jane@acme.com.au"
	a.PhoneNumber = "0400 000 000"
	return a
}

func TestIsWorkEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@acme.com.au", true},
		{"  jane@acme.com  ", true},
		{"jane@gmail.com", false},
		{"JANE@GMAIL.COM", false},
		{"someone@bigpond.net.au", false},
		{"not-an-email", false},
		{"", false},
		{"a@b@c.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorkEmail(tt.email))
		})
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name   string
		step   int
		mutate func(*models.Answers)
		want   bool
	}{
		{"company complete", models.StepCompany, nil, true},
		{"company blank name", models.StepCompany, func(a *models.Answers) { a.CompanyName = "   " }, false},
		{"company missing industry", models.StepCompany, func(a *models.Answers) { a.IndustryCategory = "" }, false},
		{"locations complete", models.StepLocations, nil, true},
		{"locations zero hq employees", models.StepLocations, func(a *models.Answers) { a.HQEmployees = models.IntPtr(0) }, true},
		{"locations hq employees unset", models.StepLocations, func(a *models.Answers) { a.HQEmployees = nil }, false},
		{"locations negative hq employees", models.StepLocations, func(a *models.Answers) { a.HQEmployees = models.IntPtr(-1) }, false},
		{"locations missing city", models.StepLocations, func(a *models.Answers) { a.HQCity = "" }, false},
		{"workforce complete", models.StepWorkforce, nil, true},
		{"workforce communication unanswered", models.StepWorkforce, func(a *models.Answers) {
			a.CommunicationStrength = models.CommunicationUnanswered
		}, false},
		{"workforce communication none", models.StepWorkforce, func(a *models.Answers) { a.CommunicationStrength = 0 }, true},
		{"benefits unset", models.StepBenefits, func(a *models.Answers) { a.ExistingBenefits = models.BenefitsUnset }, false},
		{"benefits goals optional", models.StepBenefits, func(a *models.Answers) { a.WellnessGoals = nil }, true},
		{"contact complete", models.StepContact, nil, true},
		{"contact personal email", models.StepContact, func(a *models.Answers) { a.WorkEmail = "jane@gmail.com" }, false},
		{"contact missing phone", models.StepContact, func(a *models.Answers) { a.PhoneNumber = "" }, false},
		{"unknown step", 6, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := completeAnswers()
			if tt.mutate != nil {
				tt.mutate(&a)
			}
			assert.Equal(t, tt.want, ValidateStep(tt.step, a))
		})
	}
}

func TestValidateSubmission_Complete(t *testing.T) {
	res := ValidateSubmission(completeAnswers())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateSubmission_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Answers)
		field  string
		code   string
	}{
		{"unknown business type", func(a *models.Answers) { a.BusinessType = "co-op" }, "businessType", validation.CodeInvalidValue},
		{"missing industry", func(a *models.Answers) { a.IndustryCategory = "" }, "industryCategory", validation.CodeMissingRequired},
		{"negative office employees", func(a *models.Answers) {
			a.Offices[1].Employees = models.IntPtr(-5)
		}, "offices[1].employees", validation.CodeInvalidValue},
		{"total above range", func(a *models.Answers) { a.TotalEmployees = 1501 }, "totalEmployees", validation.CodeInvalidValue},
		{"total below range", func(a *models.Answers) {
			a.TotalEmployees = 0
			a.HQEmployees = models.IntPtr(0)
			a.Offices = nil
		}, "totalEmployees", validation.CodeInvalidValue},
		{"communication unanswered", func(a *models.Answers) {
			a.CommunicationStrength = models.CommunicationUnanswered
		}, "communicationStrength", validation.CodeInvalidValue},
		{"bad email format", func(a *models.Answers) { a.WorkEmail = "jane-at-acme" }, "workEmail", validation.CodeInvalidFormat},
		{"personal email", func(a *models.Answers) { a.WorkEmail = "jane@hotmail.com" }, "workEmail", validation.CodeInvalidValue},
		{"locations exceed total", func(a *models.Answers) { a.TotalEmployees = 100 }, "totalEmployees", validation.CodeInvariantViolate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := completeAnswers()
			tt.mutate(&a)

			res := ValidateSubmission(a)
			require.False(t, res.Valid)

			errs := res.GetErrorsForField(tt.field)
			require.NotEmpty(t, errs, "errors: %v", res.GetErrorMessages())
			assert.Equal(t, tt.code, errs[0].Code)
		})
	}
}

func TestValidateSubmission_ReportsEveryFailure(t *testing.T) {
	res := ValidateSubmission(models.DefaultAnswers())

	require.False(t, res.Valid)
	for _, field := range []string{
		"companyName", "businessType", "industryCategory",
		"hqPostalCode", "hqCity", "hqState", "hqEmployees",
		"workforceType", "communicationStrength", "existingBenefits",
		"firstName", "lastName", "jobTitle", "phoneNumber", "workEmail",
	} {
		assert.NotEmpty(t, res.GetErrorsForField(field), field)
	}
	assert.Len(t, res.GetErrorMessages(), len(res.Errors))
}
