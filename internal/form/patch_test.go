package form

import (
	"encoding/json"
	"testing"

	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPatch_DecodedJSON(t *testing.T) {
	var patch map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"companyName": "Acme",
		"businessType": "public-company",
		"hqEmployees": 12,
		"offices": [{"postal": "3000", "city": "Melbourne", "state": "VIC", "employees": 4}, {"city": "Perth"}],
		"communicationStrength": 2,
		"wellnessGoals": ["sleep", "fitness", "sleep"]
	}`), &patch))

	a := models.DefaultAnswers()
	require.NoError(t, applyPatch(&a, patch))

	assert.Equal(t, "Acme", a.CompanyName)
	assert.Equal(t, models.BusinessPublicCompany, a.BusinessType)
	require.NotNil(t, a.HQEmployees)
	assert.Equal(t, 12, *a.HQEmployees)
	require.Len(t, a.Offices, 2)
	assert.Equal(t, 4, *a.Offices[0].Employees)
	assert.Nil(t, a.Offices[1].Employees)
	assert.Equal(t, 2, a.CommunicationStrength)
	assert.Equal(t, []string{"sleep", "fitness"}, a.WellnessGoals)
	assert.Equal(t, models.DefaultTotalEmployees, a.TotalEmployees, "untouched fields keep their value")
}

func TestApplyPatch_AcceptsEveryIndustry(t *testing.T) {
	for _, industry := range []string{
		"agriculture", "mining", "manufacturing", "electricity", "construction",
		"wholesale", "retail", "accommodation", "transport", "information",
		"financial", "rental", "professional", "administrative", "public",
		"education", "healthcare", "arts", "other-services",
	} {
		t.Run(industry, func(t *testing.T) {
			a := models.DefaultAnswers()
			require.NoError(t, applyPatch(&a, map[string]interface{}{"industryCategory": industry}))
			assert.Equal(t, models.IndustryCategory(industry), a.IndustryCategory)
		})
	}
}

func TestApplyPatch_Nulls(t *testing.T) {
	a := completeAnswers()
	require.NoError(t, applyPatch(&a, map[string]interface{}{
		"hqEmployees":           nil,
		"communicationStrength": nil,
		"jobTitle":              nil,
		"offices":               nil,
	}))

	assert.Nil(t, a.HQEmployees)
	assert.Equal(t, models.CommunicationUnanswered, a.CommunicationStrength)
	assert.Empty(t, a.JobTitle)
	assert.NotNil(t, a.Offices)
	assert.Empty(t, a.Offices)
}

func TestApplyPatch_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		patch map[string]interface{}
		field string
	}{
		{"unknown key", map[string]interface{}{"favouriteColour": "blue"}, "favouriteColour"},
		{"wrong type", map[string]interface{}{"companyName": 42}, "companyName"},
		{"unknown enum", map[string]interface{}{"workforceType": "gig"}, "workforceType"},
		{"fractional count", map[string]interface{}{"totalEmployees": 12.5}, "totalEmployees"},
		{"null total", map[string]interface{}{"totalEmployees": nil}, "totalEmployees"},
		{"communication out of range", map[string]interface{}{"communicationStrength": 5}, "communicationStrength"},
		{"benefits maybe", map[string]interface{}{"existingBenefits": "maybe"}, "existingBenefits"},
		{"office unknown key", map[string]interface{}{
			"offices": []interface{}{map[string]interface{}{"country": "AU"}},
		}, "offices"},
		{"goal not a string", map[string]interface{}{"wellnessGoals": []interface{}{"sleep", 3}}, "wellnessGoals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := models.DefaultAnswers()
			err := applyPatch(&a, tt.patch)
			require.Error(t, err)

			se, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidAnswerField, se.Code)
			assert.Equal(t, tt.field, se.Metadata["field"])
		})
	}
}

func TestApplyPatch_TypedOfficesAreCopied(t *testing.T) {
	offices := []models.Office{{City: "Hobart", Employees: models.IntPtr(3)}}

	a := models.DefaultAnswers()
	require.NoError(t, applyPatch(&a, map[string]interface{}{"offices": offices}))

	*offices[0].Employees = 99
	assert.Equal(t, 3, *a.Offices[0].Employees)
}
