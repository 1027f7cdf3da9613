package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAnswers(t *testing.T) {
	a := DefaultAnswers()
	assert.Equal(t, 50, a.TotalEmployees)
	assert.Equal(t, -1, a.CommunicationStrength)
	assert.Nil(t, a.HQEmployees)
	assert.Empty(t, a.Offices)
	assert.NotNil(t, a.WellnessGoals)
	assert.False(t, a.IsMeaningful())
}

func TestIsMeaningful(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Answers)
		want   bool
	}{
		{"company name", func(a *Answers) { a.CompanyName = "Acme" }, true},
		{"business type", func(a *Answers) { a.BusinessType = BusinessNonProfit }, true},
		{"first name", func(a *Answers) { a.FirstName = "Jo" }, true},
		{"work email", func(a *Answers) { a.WorkEmail = "jo@acme.com" }, true},
		{"whitespace only", func(a *Answers) { a.CompanyName = "   " }, false},
		{"city is not enough", func(a *Answers) { a.HQCity = "Perth" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultAnswers()
			tt.mutate(&a)
			assert.Equal(t, tt.want, a.IsMeaningful())
		})
	}
}

func TestLocationEmployees(t *testing.T) {
	a := DefaultAnswers()
	assert.Equal(t, 0, a.LocationEmployees())

	a.HQEmployees = IntPtr(40)
	a.Offices = []Office{{Employees: IntPtr(70)}, {City: "unset employees"}}
	assert.Equal(t, 110, a.LocationEmployees())
}

func TestClone_IsDeep(t *testing.T) {
	a := DefaultAnswers()
	a.HQEmployees = IntPtr(5)
	a.Offices = []Office{{City: "Perth", Employees: IntPtr(3)}}
	a.WellnessGoals = []string{"stress"}

	c := a.Clone()
	*c.HQEmployees = 99
	*c.Offices[0].Employees = 99
	c.Offices[0].City = "Hobart"
	c.WellnessGoals[0] = "sleep"

	assert.Equal(t, 5, *a.HQEmployees)
	assert.Equal(t, 3, *a.Offices[0].Employees)
	assert.Equal(t, "Perth", a.Offices[0].City)
	assert.Equal(t, "stress", a.WellnessGoals[0])
}

func TestEnumsAndLabels(t *testing.T) {
	assert.Len(t, BusinessTypes, 7)
	assert.Len(t, IndustryCategories, 19)
	assert.Len(t, WorkforceTypes, 5)

	assert.True(t, IsBusinessType("partnership"))
	assert.False(t, IsBusinessType("sole-trader"))
	assert.True(t, IsWorkforceType("seasonal"))
	assert.True(t, IsIndustryCategory("healthcare"))
	assert.True(t, IsIndustryCategory("other-services"))
	assert.False(t, IsIndustryCategory("information-technology"))

	assert.Equal(t, "None", CommunicationLabel(0))
	assert.Equal(t, "Great", CommunicationLabel(4))
	assert.Equal(t, "", CommunicationLabel(-1))
	assert.Equal(t, "", CommunicationLabel(5))
}
