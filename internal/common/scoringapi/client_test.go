package scoringapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wellness-eligibility/internal/attribution"
	"wellness-eligibility/internal/common/config"
	apperrors "wellness-eligibility/internal/common/errors"
	"wellness-eligibility/internal/common/logger"
	"wellness-eligibility/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnswers() models.Answers {
	a := models.DefaultAnswers()
	a.CompanyName = "Acme Pty Ltd"
	a.BusinessType = models.BusinessPublicCompany
	a.HQEmployees = models.IntPtr(40)
	a.Offices = []models.Office{{Postal: "3000", City: "Melbourne", State: "VIC", Employees: models.IntPtr(10)}}
	a.TotalEmployees = 150
	a.WellnessGoals = []string{"sleep"}
	a.WorkEmail = "jane@acme.com"
	return a
}

func newTestClient(t *testing.T, url string, timeoutMS int) *Client {
	return NewClient(config.ScoringAPIConfig{URL: url, APIKey: "secret", Timeout: timeoutMS}, logger.NewTestLogger(t))
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(sampleAnswers(), attribution.Params{
		"utm_source":   "linkedin",
		"company_name": "Injected",
		"custom_ref":   "abc",
	})

	assert.Equal(t, "Acme Pty Ltd", payload["company_name"], "attribution never overwrites answers")
	assert.Equal(t, "linkedin", payload["utm_source"])
	assert.Equal(t, "abc", payload["custom_ref"])
	assert.Equal(t, "public-company", payload["business_type"])
	assert.Equal(t, 150, payload["total_employees"])
	assert.Equal(t, []string{}, payload["current_benefits"])

	offices, ok := payload["offices"].([]Office)
	require.True(t, ok)
	require.Len(t, offices, 1)
	assert.Equal(t, "Melbourne", offices[0].City)

	for _, key := range []string{
		"company_name", "business_type", "industry_category", "hq_postal_code", "hq_city",
		"hq_state", "hq_employees", "offices", "total_employees", "workforce_type",
		"communication_strength", "wellness_goals", "existing_benefits", "current_benefits",
		"first_name", "last_name", "job_title", "work_email", "phone_number",
	} {
		assert.Contains(t, payload, key)
	}
}

func TestClient_Enabled(t *testing.T) {
	assert.False(t, newTestClient(t, "  ", 0).Enabled())
	assert.True(t, newTestClient(t, "http://scoring.local", 0).Enabled())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}

func TestClient_Submit(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus string
		wantReason string
		wantCode   apperrors.ErrorCode
	}{
		{
			name:       "nested data",
			status:     http.StatusOK,
			body:       `{"data":{"status":"approved","reason":"matched","notes":["fast track"]}}`,
			wantStatus: "approved",
			wantReason: "matched",
		},
		{
			name:       "top level",
			status:     http.StatusCreated,
			body:       `{"status":" survey "}`,
			wantStatus: "survey",
		},
		{
			name:       "no status is indeterminate",
			status:     http.StatusOK,
			body:       `{"data":{}}`,
			wantStatus: "",
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `{"error":"boom"}`,
			wantCode: apperrors.ErrCodeScoringAPIRejected,
		},
		{
			name:     "unreadable body",
			status:   http.StatusOK,
			body:     `<html>`,
			wantCode: apperrors.ErrCodeScoringAPIRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotKey string
			var gotBody map[string]interface{}
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				gotKey = r.Header.Get("X-API-Key")
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			verdict, err := newTestClient(t, srv.URL, 2000).Submit(context.Background(), sampleAnswers(), attribution.Params{"gclid": "g-1"})

			assert.Equal(t, "secret", gotKey)
			assert.Equal(t, "g-1", gotBody["gclid"])
			assert.Equal(t, "jane@acme.com", gotBody["work_email"])

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, tt.wantCode))
				assert.True(t, apperrors.IsTransportError(err))
				assert.Nil(t, verdict)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, verdict.Status)
			assert.Equal(t, tt.wantReason, verdict.Reason)
			assert.Empty(t, verdict.SubmissionID)
		})
	}
}

func TestClient_SubmitTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := newTestClient(t, srv.URL, 50).Submit(context.Background(), sampleAnswers(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeScoringAPITimeout), err.Error())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_SubmitUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url, 2000).Submit(context.Background(), sampleAnswers(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeScoringAPIUnavailable), err.Error())
}
