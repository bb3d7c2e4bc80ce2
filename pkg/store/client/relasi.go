// Package client talks to the Relasi backend, the external service that owns
// scoring, report content and payments. Everything beyond the fields we name
// is treated as opaque JSON.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/rs/zerolog"
)

// ErrNotFound marks 404 responses so handlers can distinguish "no report yet"
// from transport failures.
var ErrNotFound = fmt.Errorf("resource not found")

type Relasi struct {
	baseURL string
	client  *http.Client
}

func NewRelasi(baseURL string, timeout time.Duration) *Relasi {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Relasi{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *Relasi) get(ctx context.Context, path string, out any) error {
	return r.do(ctx, http.MethodGet, path, nil, out)
}

func (r *Relasi) post(ctx context.Context, path string, body, out any) error {
	return r.do(ctx, http.MethodPost, path, body, out)
}

func (r *Relasi) do(ctx context.Context, method, path string, body, out any) error {
	logger := zerolog.Ctx(ctx)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("relasi backend request failed")
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// QuestionSets lists the available question-set codes. Used only as the
// feature gate: the caller checks membership of a specific code.
func (r *Relasi) QuestionSets(ctx context.Context) ([]api.QuestionSet, error) {
	var out []api.QuestionSet
	if err := r.get(ctx, "/relasi4/question-sets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Report fetches a full report payload by id.
func (r *Relasi) Report(ctx context.Context, reportID string) (*api.Report, error) {
	var out api.Report
	if err := r.get(ctx, "/relasi4/reports/"+url.PathEscape(reportID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Teaser fetches the free preview for an assessment.
func (r *Relasi) Teaser(ctx context.Context, assessmentID string) (*api.Teaser, error) {
	var out api.Teaser
	if err := r.get(ctx, "/relasi4/free-teaser/"+url.PathEscape(assessmentID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportByAssessment checks whether an assessment already has a report.
func (r *Relasi) ReportByAssessment(ctx context.Context, assessmentID string) (*api.ReportLookup, error) {
	var out api.ReportLookup
	if err := r.get(ctx, "/relasi4/reports/by-assessment/"+url.PathEscape(assessmentID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePayment opens a payment session and returns the widget token.
func (r *Relasi) CreatePayment(ctx context.Context, req api.PaymentRequest) (*api.PaymentSession, error) {
	var out api.PaymentSession
	if err := r.post(ctx, "/relasi4/payment/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateReport asks the backend to produce a report for an assessment.
func (r *Relasi) GenerateReport(ctx context.Context, assessmentID string) (*api.GenerateResponse, error) {
	var out api.GenerateResponse
	body := map[string]string{"assessment_id": assessmentID}
	if err := r.post(ctx, "/relasi4/reports/generate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCoupleInvite returns a shareable invite code for the partner flow.
func (r *Relasi) CreateCoupleInvite(ctx context.Context, assessmentID string) (*api.InviteCode, error) {
	var out api.InviteCode
	body := map[string]string{"assessment_id": assessmentID}
	if err := r.post(ctx, "/relasi4/couple/invite", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFamilyGroup returns a shareable group code for the family flow.
func (r *Relasi) CreateFamilyGroup(ctx context.Context, assessmentID, familyName string) (*api.InviteCode, error) {
	var out api.InviteCode
	body := map[string]string{"assessment_id": assessmentID, "family_name": familyName}
	if err := r.post(ctx, "/relasi4/family/create", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
