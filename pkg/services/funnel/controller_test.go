package funnel

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/relasi-app/relasi-core/pkg/store/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Teaser(ctx context.Context, assessmentID string) (*api.Teaser, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Teaser), args.Error(1)
}

func (m *mockBackend) ReportByAssessment(ctx context.Context, assessmentID string) (*api.ReportLookup, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ReportLookup), args.Error(1)
}

func (m *mockBackend) GenerateReport(ctx context.Context, assessmentID string) (*api.GenerateResponse, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.GenerateResponse), args.Error(1)
}

func (m *mockBackend) CreatePayment(ctx context.Context, req api.PaymentRequest) (*api.PaymentSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PaymentSession), args.Error(1)
}

func TestEnsureReportExisting(t *testing.T) {
	backend := new(mockBackend)
	existing := &api.Report{ID: "rep-1", Type: "single"}
	backend.On("ReportByAssessment", mock.Anything, "as-1").
		Return(&api.ReportLookup{Exists: true, Report: existing}, nil)

	c := NewController(backend, session.NewMemory(), time.Hour)

	got, err := c.EnsureReport(context.Background(), "as-1")
	require.NoError(t, err)
	assert.Equal(t, existing, got)
	backend.AssertNotCalled(t, "GenerateReport", mock.Anything, mock.Anything)
}

func TestEnsureReportGeneratesWhenMissing(t *testing.T) {
	backend := new(mockBackend)
	generated := &api.Report{ID: "rep-2", Type: "couple"}
	backend.On("ReportByAssessment", mock.Anything, "as-2").
		Return(&api.ReportLookup{Exists: false}, nil)
	backend.On("GenerateReport", mock.Anything, "as-2").
		Return(&api.GenerateResponse{Success: true, Report: generated}, nil)

	c := NewController(backend, session.NewMemory(), time.Hour)

	got, err := c.EnsureReport(context.Background(), "as-2")
	require.NoError(t, err)
	assert.Equal(t, generated, got)
	backend.AssertExpectations(t)
}

func TestEnsureReportGenerationFailure(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ReportByAssessment", mock.Anything, "as-3").
		Return(&api.ReportLookup{Exists: false}, nil)
	backend.On("GenerateReport", mock.Anything, "as-3").
		Return(&api.GenerateResponse{Success: false}, nil)

	c := NewController(backend, session.NewMemory(), time.Hour)

	_, err := c.EnsureReport(context.Background(), "as-3")
	assert.Error(t, err)
}

func TestEnsureReportLookupError(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ReportByAssessment", mock.Anything, "as-4").
		Return(nil, fmt.Errorf("backend down"))

	c := NewController(backend, session.NewMemory(), time.Hour)

	_, err := c.EnsureReport(context.Background(), "as-4")
	assert.Error(t, err)
	backend.AssertNotCalled(t, "GenerateReport", mock.Anything, mock.Anything)
}

func TestRegisterVisitCounts(t *testing.T) {
	c := NewController(new(mockBackend), session.NewMemory(), time.Hour)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := c.RegisterVisit(ctx, "as-1")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	// independent counter per assessment
	n, err := c.RegisterVisit(ctx, "as-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRegisterVisitEmptyID(t *testing.T) {
	c := NewController(new(mockBackend), session.NewMemory(), time.Hour)

	_, err := c.RegisterVisit(context.Background(), "")
	assert.Error(t, err)
}

func TestCreatePayment(t *testing.T) {
	backend := new(mockBackend)
	backend.On("CreatePayment", mock.Anything, api.PaymentRequest{AssessmentID: "as-1", Kind: "single"}).
		Return(&api.PaymentSession{SnapToken: "tok", PaymentID: "pay-1"}, nil)

	c := NewController(backend, session.NewMemory(), time.Hour)

	sess, err := c.CreatePayment(context.Background(), "as-1", "single")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.SnapToken)

	_, err = c.CreatePayment(context.Background(), "", "single")
	assert.Error(t, err)
}
