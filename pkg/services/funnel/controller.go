package funnel

import (
	"context"
	"fmt"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/relasi-app/relasi-core/pkg/store/session"
)

// Backend is the slice of the Relasi client the funnel needs.
type Backend interface {
	Teaser(ctx context.Context, assessmentID string) (*api.Teaser, error)
	ReportByAssessment(ctx context.Context, assessmentID string) (*api.ReportLookup, error)
	GenerateReport(ctx context.Context, assessmentID string) (*api.GenerateResponse, error)
	CreatePayment(ctx context.Context, req api.PaymentRequest) (*api.PaymentSession, error)
}

// Controller orchestrates the upsell flow around the two core engines:
// teaser fetch, report materialization, payment intents and the advisory
// visit counter that gates the second_visit trigger.
type Controller struct {
	backend  Backend
	sessions session.Store
	visitTTL time.Duration
}

func NewController(backend Backend, sessions session.Store, visitTTL time.Duration) *Controller {
	return &Controller{
		backend:  backend,
		sessions: sessions,
		visitTTL: visitTTL,
	}
}

// RegisterVisit bumps the per-assessment visit counter. Advisory only:
// last write wins across tabs.
func (c *Controller) RegisterVisit(ctx context.Context, assessmentID string) (int64, error) {
	if assessmentID == "" {
		return 0, fmt.Errorf("assessment id cannot be empty")
	}
	return c.sessions.Increment(ctx, "visits:"+assessmentID, c.visitTTL)
}

// Teaser fetches the free preview for an assessment.
func (c *Controller) Teaser(ctx context.Context, assessmentID string) (*api.Teaser, error) {
	return c.backend.Teaser(ctx, assessmentID)
}

// EnsureReport returns the report for an assessment, asking the backend to
// generate one when it does not exist yet.
func (c *Controller) EnsureReport(ctx context.Context, assessmentID string) (*api.Report, error) {
	lookup, err := c.backend.ReportByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if lookup.Exists && lookup.Report != nil {
		return lookup.Report, nil
	}

	generated, err := c.backend.GenerateReport(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if !generated.Success || generated.Report == nil {
		return nil, fmt.Errorf("report generation failed for assessment %s", assessmentID)
	}
	return generated.Report, nil
}

// CreatePayment opens a payment session for the report purchase.
func (c *Controller) CreatePayment(ctx context.Context, assessmentID, kind string) (*api.PaymentSession, error) {
	if assessmentID == "" {
		return nil, fmt.Errorf("assessment id cannot be empty")
	}
	return c.backend.CreatePayment(ctx, api.PaymentRequest{AssessmentID: assessmentID, Kind: kind})
}
