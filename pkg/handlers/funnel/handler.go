package funnel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/relasi-app/relasi-core/pkg/adapters"
	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/relasi-app/relasi-core/pkg/services/experiment"
	funnelsvc "github.com/relasi-app/relasi-core/pkg/services/funnel"
	"github.com/rs/zerolog"
)

// Assigner hands out session-stable variants.
type Assigner interface {
	Assign(ctx context.Context, sessionID string, surface domain.SurfaceID) (domain.Variant, error)
}

// ExitDetector fires the exit prompt at most once per session.
type ExitDetector interface {
	Detect(ctx context.Context, sessionID string, pointerY float64, converted bool) (bool, error)
}

// Gate reports the tri-state feature availability.
type Gate interface {
	Check(ctx context.Context) funnelsvc.State
}

// Flow is the funnel orchestration surface.
type Flow interface {
	RegisterVisit(ctx context.Context, assessmentID string) (int64, error)
	Teaser(ctx context.Context, assessmentID string) (*api.Teaser, error)
	CreatePayment(ctx context.Context, assessmentID, kind string) (*api.PaymentSession, error)
}

// Recorder accepts analytics events. Implementations never fail the caller.
type Recorder interface {
	Record(name string, properties map[string]any)
}

type Handler struct {
	assigner  Assigner
	microcopy *experiment.Microcopy
	exits     ExitDetector
	gate      Gate
	flow      Flow
	recorder  Recorder
}

func NewHandler(
	assigner Assigner,
	microcopy *experiment.Microcopy,
	exits ExitDetector,
	gate Gate,
	flow Flow,
	recorder Recorder,
) *Handler {
	return &Handler{
		assigner:  assigner,
		microcopy: microcopy,
		exits:     exits,
		gate:      gate,
		flow:      flow,
		recorder:  recorder,
	}
}

// PostAssignment assigns (or returns) the session's variant for a surface.
func (h *Handler) PostAssignment(w http.ResponseWriter, r *http.Request) {
	surface := domain.SurfaceID(chi.URLParam(r, "surface"))

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	variant, err := h.assigner.Assign(r.Context(), body.SessionID, surface)
	if err != nil {
		if errors.Is(err, experiment.ErrUnknownSurface) {
			writeError(w, http.StatusNotFound, "unknown surface")
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("variant assignment failed")
		writeError(w, http.StatusInternalServerError, "assignment failed")
		return
	}

	h.recorder.Record("variant_assigned", map[string]any{
		"surface": string(surface),
		"variant": string(variant),
	})
	writeJSON(w, http.StatusOK, api.Assignment{Surface: string(surface), Variant: string(variant)})
}

// GetContent resolves the copy bundle for a surface render. Assignment is
// performed first, so the content is always consistent with the session's
// variant.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	surface := domain.SurfaceID(q.Get("surface"))
	sessionID := q.Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	variant, err := h.assigner.Assign(r.Context(), sessionID, surface)
	if err != nil {
		if errors.Is(err, experiment.ErrUnknownSurface) {
			writeError(w, http.StatusNotFound, "unknown surface")
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("variant assignment failed")
		writeError(w, http.StatusInternalServerError, "assignment failed")
		return
	}

	profile := adapters.MapProfileParams(q.Get("color"), q.Get("need"), q.Get("style"))
	bundle := experiment.ResolveContent(variant, profile, domain.Locale(q.Get("locale")))

	writeJSON(w, http.StatusOK, api.Content{
		Variant:      string(variant),
		Headline:     bundle.Headline,
		Subheadline:  bundle.Subheadline,
		ModifierText: bundle.ModifierText,
		CTALabel:     bundle.CTALabel,
		AccentColor:  bundle.AccentColor,
	})
}

// GetHesitation returns the ordered microcopy candidates for a trigger kind.
func (h *Handler) GetHesitation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := domain.TriggerKind(q.Get("kind"))
	profile := adapters.MapProfileParams(q.Get("color"), "", "")

	messages := h.microcopy.Messages(kind, profile, domain.Locale(q.Get("locale")))
	writeJSON(w, http.StatusOK, api.HesitationMessages{Kind: string(kind), Messages: messages})
}

// PostExitIntent evaluates a pointer crossing. Fires true at most once per
// session.
func (h *Handler) PostExitIntent(w http.ResponseWriter, r *http.Request) {
	var body api.ExitIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	converted := r.URL.Query().Get("converted") == "true"
	fire, err := h.exits.Detect(r.Context(), body.SessionID, body.PointerY, converted)
	if err != nil {
		// instrumentation-adjacent: degrade to "don't fire"
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("exit intent check failed")
		fire = false
	}

	if fire {
		h.recorder.Record("exit_intent_fired", map[string]any{"session_id": body.SessionID})
	}
	writeJSON(w, http.StatusOK, api.ExitIntentResponse{Fire: fire})
}

// PostVisit bumps the advisory visit counter for an assessment.
func (h *Handler) PostVisit(w http.ResponseWriter, r *http.Request) {
	var body api.VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.AssessmentID == "" {
		writeError(w, http.StatusBadRequest, "assessment_id is required")
		return
	}

	visits, err := h.flow.RegisterVisit(r.Context(), body.AssessmentID)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("visit counter failed")
		writeJSON(w, http.StatusOK, api.VisitResponse{Visits: 0})
		return
	}

	if visits == 2 {
		h.recorder.Record("second_visit", map[string]any{"assessment_id": body.AssessmentID})
	}
	writeJSON(w, http.StatusOK, api.VisitResponse{Visits: visits})
}

// GetAvailability reports the tri-state feature gate. Always 200: a failed
// gate is a state, not an error.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.Availability{State: string(h.gate.Check(r.Context()))})
}

// GetTeaser proxies the free preview for an assessment.
func (h *Handler) GetTeaser(w http.ResponseWriter, r *http.Request) {
	assessmentID := r.URL.Query().Get("assessment_id")
	if assessmentID == "" {
		writeError(w, http.StatusBadRequest, "assessment_id is required")
		return
	}

	teaser, err := h.flow.Teaser(r.Context(), assessmentID)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("teaser fetch failed")
		writeError(w, http.StatusBadGateway, "teaser unavailable")
		return
	}

	h.recorder.Record("teaser_viewed", map[string]any{"assessment_id": assessmentID})
	writeJSON(w, http.StatusOK, teaser)
}

// PostEvent accepts a client-side analytics event. Always 202; transport
// problems downstream are swallowed by the emitter.
func (h *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	var body api.Event
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, "event name is required")
		return
	}

	h.recorder.Record(body.Name, body.Properties)
	w.WriteHeader(http.StatusAccepted)
}

// PostPayment opens a payment session with the backend.
func (h *Handler) PostPayment(w http.ResponseWriter, r *http.Request) {
	var body api.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.AssessmentID == "" {
		writeError(w, http.StatusBadRequest, "assessment_id is required")
		return
	}

	sess, err := h.flow.CreatePayment(r.Context(), body.AssessmentID, body.Kind)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("payment creation failed")
		writeError(w, http.StatusBadGateway, "payment service unavailable")
		return
	}

	h.recorder.Record("payment_initiated", map[string]any{"assessment_id": body.AssessmentID})
	writeJSON(w, http.StatusOK, sess)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Error{Message: message})
}
