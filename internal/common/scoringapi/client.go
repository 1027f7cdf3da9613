// internal/common/scoringapi/client.go
package scoringapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"wellness-eligibility/internal/attribution"
	"wellness-eligibility/internal/common/config"
	apperrors "wellness-eligibility/internal/common/errors"
	apphttp "wellness-eligibility/internal/common/http"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/common/metrics"
	"wellness-eligibility/internal/models"
)

const DefaultTimeout = 30 * time.Second

// Client submits completed answers to the remote eligibility service.
type Client struct {
	url        string
	apiKey     string
	timeout    time.Duration
	httpClient *apphttp.Client
	logger     logger.Logger
}

// Office is the wire shape of a secondary location.
type Office struct {
	Postal    string `json:"postal"`
	City      string `json:"city"`
	State     string `json:"state"`
	Employees *int   `json:"employees"`
}

type verdictBody struct {
	Status string   `json:"status"`
	Reason string   `json:"reason"`
	Notes  []string `json:"notes"`
}

type submitResponse struct {
	Data *verdictBody `json:"data"`
	verdictBody
}

func NewClient(cfg config.ScoringAPIConfig, log logger.Logger) *Client {
	timeout := config.GetDuration(cfg.Timeout)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        strings.TrimSpace(cfg.URL),
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		httpClient: apphttp.NewClient(timeout),
		logger:     logger.ForComponent(log, "scoring-api"),
	}
}

// Enabled reports whether an endpoint is configured. Without one no remote call is attempted.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// Submit posts the answers and attribution once. A 2xx reply yields a verdict whose
// Status may be empty when the service did not decide. Timeouts, network failures
// and non-2xx replies come back as SCORING_API_* errors; nothing is retried.
func (c *Client) Submit(ctx context.Context, a models.Answers, attr attribution.Params) (*models.RemoteVerdict, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	headers := map[string]string{"X-API-Key": c.apiKey}
	resp, err := c.httpClient.PostJSON(ctx, c.url, headers, BuildPayload(a, attr))
	if err != nil {
		if isTimeout(ctx, err) {
			metrics.ScoringAPIDuration.WithLabelValues("timeout").Observe(c.timeout.Seconds())
			c.logger.Warn("scoring API timed out", map[string]interface{}{"timeout": c.timeout.String()})
			return nil, apperrors.NewScoringAPITimeoutError(c.timeout, err)
		}
		metrics.ScoringAPIDuration.WithLabelValues("unavailable").Observe(0)
		c.logger.Warn("scoring API unreachable", map[string]interface{}{"error": err})
		return nil, apperrors.NewScoringAPIUnavailableError(err)
	}

	fields := map[string]interface{}{
		"status_code": resp.StatusCode,
		"duration_ms": resp.Duration.Milliseconds(),
	}

	if !resp.IsSuccess() {
		metrics.ScoringAPIDuration.WithLabelValues("rejected").Observe(resp.Duration.Seconds())
		c.logger.Warn("scoring API rejected submission", fields)
		return nil, apperrors.NewScoringAPIRejectedError(resp.StatusCode, string(resp.Body))
	}

	var parsed submitResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		metrics.ScoringAPIDuration.WithLabelValues("rejected").Observe(resp.Duration.Seconds())
		c.logger.Warn("scoring API reply unreadable", fields)
		return nil, apperrors.NewScoringAPIRejectedError(resp.StatusCode, string(resp.Body))
	}

	body := parsed.verdictBody
	if parsed.Data != nil {
		body = *parsed.Data
	}

	metrics.ScoringAPIDuration.WithLabelValues("ok").Observe(resp.Duration.Seconds())
	fields["remote_status"] = body.Status
	c.logger.Info("scoring API replied", fields)

	return &models.RemoteVerdict{
		Status: strings.TrimSpace(body.Status),
		Reason: body.Reason,
		Notes:  body.Notes,
	}, nil
}

// BuildPayload flattens answers to snake_case keys and merges attribution parameters
// at the top level without overwriting any answer key.
func BuildPayload(a models.Answers, attr attribution.Params) map[string]interface{} {
	offices := make([]Office, 0, len(a.Offices))
	for _, o := range a.Offices {
		offices = append(offices, Office{Postal: o.Postal, City: o.City, State: o.State, Employees: o.Employees})
	}

	payload := map[string]interface{}{
		"company_name":           a.CompanyName,
		"business_type":          string(a.BusinessType),
		"industry_category":      string(a.IndustryCategory),
		"hq_postal_code":         a.HQPostalCode,
		"hq_city":                a.HQCity,
		"hq_state":               a.HQState,
		"hq_employees":           a.HQEmployees,
		"offices":                offices,
		"total_employees":        a.TotalEmployees,
		"workforce_type":         string(a.WorkforceType),
		"communication_strength": a.CommunicationStrength,
		"wellness_goals":         nonNil(a.WellnessGoals),
		"existing_benefits":      string(a.ExistingBenefits),
		"current_benefits":       nonNil(a.CurrentBenefits),
		"first_name":             a.FirstName,
		"last_name":              a.LastName,
		"job_title":              a.JobTitle,
		"work_email":             a.WorkEmail,
		"phone_number":           a.PhoneNumber,
	}
	attr.MergeInto(payload)
	return payload
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
