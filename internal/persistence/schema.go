package persistence

import (
	"encoding/json"

	"wellness-eligibility/internal/models"
)

// answersSchema is the JSON schema the saved form-data blob must satisfy.
var answersSchema = buildAnswersSchema()

func buildAnswersSchema() string {
	str := map[string]interface{}{"type": "string"}
	strSet := map[string]interface{}{"type": []string{"array", "null"}, "items": str}
	optionalCount := map[string]interface{}{"type": []string{"integer", "null"}}

	enum := func(values ...string) map[string]interface{} {
		return map[string]interface{}{"type": "string", "enum": append([]string{""}, values...)}
	}

	businessTypes := make([]string, len(models.BusinessTypes))
	for i, b := range models.BusinessTypes {
		businessTypes[i] = string(b)
	}
	industries := make([]string, len(models.IndustryCategories))
	for i, c := range models.IndustryCategories {
		industries[i] = string(c)
	}
	workforce := make([]string, len(models.WorkforceTypes))
	for i, w := range models.WorkforceTypes {
		workforce[i] = string(w)
	}

	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"companyName":      str,
			"businessType":     enum(businessTypes...),
			"industryCategory": enum(industries...),
			"hqPostalCode":     str,
			"hqCity":           str,
			"hqState":          str,
			"hqEmployees":      optionalCount,
			"offices": map[string]interface{}{
				"type": []string{"array", "null"},
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"postal":    str,
						"city":      str,
						"state":     str,
						"employees": optionalCount,
					},
				},
			},
			"totalEmployees": map[string]interface{}{"type": "integer"},
			"workforceType":  enum(workforce...),
			"communicationStrength": map[string]interface{}{
				"type":    "integer",
				"minimum": models.CommunicationUnanswered,
				"maximum": models.MaxCommunication,
			},
			"wellnessGoals":    strSet,
			"existingBenefits": enum(string(models.BenefitsYes), string(models.BenefitsNo)),
			"currentBenefits":  strSet,
			"firstName":        str,
			"lastName":         str,
			"jobTitle":         str,
			"workEmail":        str,
			"phoneNumber":      str,
		},
	}

	b, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return string(b)
}
