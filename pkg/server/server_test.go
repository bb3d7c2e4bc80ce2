package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	funnelhandler "github.com/relasi-app/relasi-core/pkg/handlers/funnel"
	reporthandler "github.com/relasi-app/relasi-core/pkg/handlers/report"
	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/relasi-app/relasi-core/pkg/services/experiment"
	funnelsvc "github.com/relasi-app/relasi-core/pkg/services/funnel"
	"github.com/relasi-app/relasi-core/pkg/services/pdf"
	"github.com/relasi-app/relasi-core/pkg/store/client"
	"github.com/relasi-app/relasi-core/pkg/store/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Report(ctx context.Context, reportID string) (*api.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Report), args.Error(1)
}

type mockMaterializer struct {
	mock.Mock
}

func (m *mockMaterializer) EnsureReport(ctx context.Context, assessmentID string) (*api.Report, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Report), args.Error(1)
}

type mockFlow struct {
	mock.Mock
}

func (m *mockFlow) RegisterVisit(ctx context.Context, assessmentID string) (int64, error) {
	args := m.Called(ctx, assessmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFlow) Teaser(ctx context.Context, assessmentID string) (*api.Teaser, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Teaser), args.Error(1)
}

func (m *mockFlow) CreatePayment(ctx context.Context, assessmentID, kind string) (*api.PaymentSession, error) {
	args := m.Called(ctx, assessmentID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PaymentSession), args.Error(1)
}

type stubGate struct {
	state funnelsvc.State
}

func (s *stubGate) Check(context.Context) funnelsvc.State { return s.state }

type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSink) Record(name string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *recordingSink) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fixture struct {
	source       *mockSource
	materializer *mockMaterializer
	flow         *mockFlow
	gate         *stubGate
	sink         *recordingSink
	server       *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	microcopy, err := experiment.LoadMicrocopy()
	require.NoError(t, err)

	store := session.NewMemory()
	f := &fixture{
		source:       new(mockSource),
		materializer: new(mockMaterializer),
		flow:         new(mockFlow),
		gate:         &stubGate{state: funnelsvc.StateAvailable},
		sink:         &recordingSink{},
	}

	deps := Dependencies{
		Report: reporthandler.NewHandler(
			f.source, f.materializer, pdf.NewGenerator(""), nil),
		Funnel: funnelhandler.NewHandler(
			experiment.NewAssigner(experiment.DefaultRegistry(), store, time.Hour),
			microcopy,
			experiment.NewExitIntentDetector(store, time.Hour),
			f.gate,
			f.flow,
			f.sink,
		),
	}

	f.server = httptest.NewServer(ConfigureRouter(zerolog.Nop(), deps))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fixture) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(f.server.URL+path, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGetReportPDF(t *testing.T) {
	f := newFixture(t)
	f.source.On("Report", mock.Anything, "rep-1").Return(&api.Report{
		ID:   "rep-1",
		Type: "single",
		Single: &api.SingleReport{
			Profile:     api.PersonProfile{Name: "Ayu", PrimaryColor: "color_red", Summary: "s"},
			Strengths:   []api.FlexEntry{{Title: "Decisive"}},
			ColorScores: map[string]int{"color_red": 88},
		},
	}, nil)

	resp, err := http.Get(f.server.URL + "/api/v1/reports/rep-1/pdf")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Relasi4-Driver-")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestGetReportPDFNotFound(t *testing.T) {
	f := newFixture(t)
	f.source.On("Report", mock.Anything, "missing").
		Return(nil, fmt.Errorf("wrapped: %w", client.ErrNotFound))

	resp, err := http.Get(f.server.URL + "/api/v1/reports/missing/pdf")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAssessmentPDFBackendDown(t *testing.T) {
	f := newFixture(t)
	f.materializer.On("EnsureReport", mock.Anything, "as-1").
		Return(nil, fmt.Errorf("connection refused"))

	resp, err := http.Get(f.server.URL + "/api/v1/assessments/as-1/report/pdf")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestPostAssignmentIsStable(t *testing.T) {
	f := newFixture(t)

	first := decodeBody[api.Assignment](t, f.postJSON(t,
		"/api/v1/experiments/results_upsell/assignment", map[string]string{"session_id": "sess-1"}))
	assert.Equal(t, "results_upsell", first.Surface)
	assert.NotEmpty(t, first.Variant)

	for i := 0; i < 5; i++ {
		again := decodeBody[api.Assignment](t, f.postJSON(t,
			"/api/v1/experiments/results_upsell/assignment", map[string]string{"session_id": "sess-1"}))
		assert.Equal(t, first.Variant, again.Variant)
	}

	assert.Contains(t, f.sink.names(), "variant_assigned")
}

func TestPostAssignmentUnknownSurface(t *testing.T) {
	f := newFixture(t)

	resp := f.postJSON(t, "/api/v1/experiments/sidebar_promo/assignment",
		map[string]string{"session_id": "sess-1"})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostAssignmentMissingSession(t *testing.T) {
	f := newFixture(t)

	resp := f.postJSON(t, "/api/v1/experiments/results_upsell/assignment", map[string]string{})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetContentMatchesAssignment(t *testing.T) {
	f := newFixture(t)

	assigned := decodeBody[api.Assignment](t, f.postJSON(t,
		"/api/v1/experiments/results_upsell/assignment", map[string]string{"session_id": "sess-9"}))

	resp, err := http.Get(f.server.URL +
		"/api/v1/funnel/content?surface=results_upsell&session_id=sess-9&color=color_blue&locale=en")
	require.NoError(t, err)
	content := decodeBody[api.Content](t, resp)

	assert.Equal(t, assigned.Variant, content.Variant)
	assert.NotEmpty(t, content.Headline)
	assert.NotEmpty(t, content.CTALabel)
	assert.Equal(t, "#3182CE", content.AccentColor)
}

func TestGetHesitation(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/api/v1/funnel/hesitation?kind=time_delay&color=color_red&locale=en")
	require.NoError(t, err)
	msgs := decodeBody[api.HesitationMessages](t, resp)

	assert.Equal(t, "time_delay", msgs.Kind)
	assert.NotEmpty(t, msgs.Messages)
	assert.True(t, strings.Contains(msgs.Messages[0], "Driver"))
}

func TestPostExitIntentFiresOnce(t *testing.T) {
	f := newFixture(t)

	first := decodeBody[api.ExitIntentResponse](t, f.postJSON(t, "/api/v1/funnel/exit-intent",
		api.ExitIntentRequest{SessionID: "sess-1", PointerY: -3}))
	assert.True(t, first.Fire)

	second := decodeBody[api.ExitIntentResponse](t, f.postJSON(t, "/api/v1/funnel/exit-intent",
		api.ExitIntentRequest{SessionID: "sess-1", PointerY: -3}))
	assert.False(t, second.Fire)

	assert.Contains(t, f.sink.names(), "exit_intent_fired")
}

func TestPostVisitRecordsSecondVisit(t *testing.T) {
	f := newFixture(t)
	f.flow.On("RegisterVisit", mock.Anything, "as-1").Return(int64(2), nil)

	visits := decodeBody[api.VisitResponse](t, f.postJSON(t, "/api/v1/funnel/visits",
		api.VisitRequest{AssessmentID: "as-1"}))

	assert.Equal(t, int64(2), visits.Visits)
	assert.Contains(t, f.sink.names(), "second_visit")
}

func TestGetAvailabilityAlwaysOK(t *testing.T) {
	f := newFixture(t)
	f.gate.state = funnelsvc.StateUnavailable

	resp, err := http.Get(f.server.URL + "/api/v1/funnel/availability")
	require.NoError(t, err)
	got := decodeBody[api.Availability](t, resp)

	assert.Equal(t, string(funnelsvc.StateUnavailable), got.State)
}

func TestGetTeaser(t *testing.T) {
	f := newFixture(t)
	f.flow.On("Teaser", mock.Anything, "as-1").Return(&api.Teaser{
		AssessmentID: "as-1",
		PriceLabel:   "Rp 49.000",
	}, nil)

	resp, err := http.Get(f.server.URL + "/api/v1/funnel/teaser?assessment_id=as-1")
	require.NoError(t, err)
	teaser := decodeBody[api.Teaser](t, resp)

	assert.Equal(t, "Rp 49.000", teaser.PriceLabel)
	assert.Contains(t, f.sink.names(), "teaser_viewed")
}

func TestPostEvent(t *testing.T) {
	f := newFixture(t)

	resp := f.postJSON(t, "/api/v1/events", api.Event{Name: "cta_clicked"})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Contains(t, f.sink.names(), "cta_clicked")
}

func TestPostPayment(t *testing.T) {
	f := newFixture(t)
	f.flow.On("CreatePayment", mock.Anything, "as-1", "single").
		Return(&api.PaymentSession{SnapToken: "tok"}, nil)

	sess := decodeBody[api.PaymentSession](t, f.postJSON(t, "/api/v1/payments",
		api.PaymentRequest{AssessmentID: "as-1", Kind: "single"}))

	assert.Equal(t, "tok", sess.SnapToken)
	assert.Contains(t, f.sink.names(), "payment_initiated")
}
