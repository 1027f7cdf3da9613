// internal/form/patch.go
package form

import (
	"fmt"
	"math"
	"sort"

	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/models"
)

// applyPatch merges patch into a, keyed by the camelCase JSON field names. Each key
// replaces the whole field. The first bad key aborts and a is left partially written,
// so callers patch a copy.
func applyPatch(a *models.Answers, patch map[string]interface{}) error {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := applyField(a, key, patch[key]); err != nil {
			return apperrors.NewInvalidAnswerFieldError(key, err.Error())
		}
	}
	return nil
}

func applyField(a *models.Answers, key string, v interface{}) error {
	var err error
	switch key {
	case "companyName":
		a.CompanyName, err = asString(v)
	case "businessType":
		var s string
		if s, err = asEnum(v, models.IsBusinessType); err == nil {
			a.BusinessType = models.BusinessType(s)
		}
	case "industryCategory":
		var s string
		if s, err = asEnum(v, models.IsIndustryCategory); err == nil {
			a.IndustryCategory = models.IndustryCategory(s)
		}
	case "hqPostalCode":
		a.HQPostalCode, err = asString(v)
	case "hqCity":
		a.HQCity, err = asString(v)
	case "hqState":
		a.HQState, err = asString(v)
	case "hqEmployees":
		a.HQEmployees, err = asOptionalInt(v)
	case "offices":
		a.Offices, err = asOffices(v)
	case "totalEmployees":
		if v == nil {
			return fmt.Errorf("value is required")
		}
		a.TotalEmployees, err = asInt(v)
	case "workforceType":
		var s string
		if s, err = asEnum(v, models.IsWorkforceType); err == nil {
			a.WorkforceType = models.WorkforceType(s)
		}
	case "communicationStrength":
		if v == nil {
			a.CommunicationStrength = models.CommunicationUnanswered
			return nil
		}
		var n int
		if n, err = asInt(v); err == nil {
			if n < models.CommunicationUnanswered || n > models.MaxCommunication {
				return fmt.Errorf("must be between %d and %d", models.CommunicationUnanswered, models.MaxCommunication)
			}
			a.CommunicationStrength = n
		}
	case "wellnessGoals":
		a.WellnessGoals, err = asStringSet(v)
	case "existingBenefits":
		var s string
		if s, err = asEnum(v, func(s string) bool {
			return s == string(models.BenefitsYes) || s == string(models.BenefitsNo)
		}); err == nil {
			a.ExistingBenefits = models.ExistingBenefits(s)
		}
	case "currentBenefits":
		a.CurrentBenefits, err = asStringSet(v)
	case "firstName":
		a.FirstName, err = asString(v)
	case "lastName":
		a.LastName, err = asString(v)
	case "jobTitle":
		a.JobTitle, err = asString(v)
	case "workEmail":
		a.WorkEmail, err = asString(v)
	case "phoneNumber":
		a.PhoneNumber, err = asString(v)
	default:
		return fmt.Errorf("unknown field")
	}
	return err
}

func asString(v interface{}) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func asEnum(v interface{}, valid func(string) bool) (string, error) {
	s, err := asString(v)
	if err != nil {
		return "", err
	}
	if s != "" && !valid(s) {
		return "", fmt.Errorf("unsupported value %q", s)
	}
	return s, nil
}

func asInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("expected whole number, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func asOptionalInt(v interface{}) (*int, error) {
	if v == nil {
		return nil, nil
	}
	if p, ok := v.(*int); ok {
		if p == nil {
			return nil, nil
		}
		return models.IntPtr(*p), nil
	}
	n, err := asInt(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// asStringSet accepts []string or a decoded JSON array and drops duplicates, keeping first occurrence.
func asStringSet(v interface{}) ([]string, error) {
	var items []string
	switch s := v.(type) {
	case nil:
	case []string:
		items = s
	case []interface{}:
		items = make([]string, 0, len(s))
		for i, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: expected string, got %T", i, item)
			}
			items = append(items, str)
		}
	default:
		return nil, fmt.Errorf("expected list of strings, got %T", v)
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

func asOffices(v interface{}) ([]models.Office, error) {
	switch s := v.(type) {
	case nil:
		return []models.Office{}, nil
	case []models.Office:
		return models.Answers{Offices: s}.Clone().Offices, nil
	case []interface{}:
		out := make([]models.Office, 0, len(s))
		for i, item := range s {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("office %d: expected object, got %T", i, item)
			}
			office, err := asOffice(m)
			if err != nil {
				return nil, fmt.Errorf("office %d: %w", i, err)
			}
			out = append(out, office)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of offices, got %T", v)
	}
}

func asOffice(m map[string]interface{}) (models.Office, error) {
	var (
		o   models.Office
		err error
	)
	for k, v := range m {
		switch k {
		case "postal":
			o.Postal, err = asString(v)
		case "city":
			o.City, err = asString(v)
		case "state":
			o.State, err = asString(v)
		case "employees":
			o.Employees, err = asOptionalInt(v)
		default:
			err = fmt.Errorf("unknown field %q", k)
		}
		if err != nil {
			return models.Office{}, err
		}
	}
	return o, nil
}
