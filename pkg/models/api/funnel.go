package api

// QuestionSet gates feature availability by code membership.
type QuestionSet struct {
	Code string `json:"code"`
}

// Teaser is the free preview of a paid report.
type Teaser struct {
	AssessmentID     string         `json:"assessment_id"`
	ColorScores      map[string]int `json:"color_scores"`
	StrengthsPreview []string       `json:"strengths_preview"`
	PriceLabel       string         `json:"price_label"`
	PriceAmount      int64          `json:"price_amount"`
}

// PaymentRequest is the body of POST /relasi4/payment/create.
type PaymentRequest struct {
	AssessmentID string `json:"assessment_id"`
	Kind         string `json:"kind"`
}

// PaymentSession carries the third-party widget handle back to the caller.
type PaymentSession struct {
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
	PaymentID   string `json:"payment_id"`
}

// InviteCode is the shareable code for couple/family report flows.
type InviteCode struct {
	Code     string `json:"code"`
	ShareURL string `json:"share_url"`
}

// Assignment is the response of POST /api/v1/experiments/{surface}/assignment.
type Assignment struct {
	Surface string `json:"surface"`
	Variant string `json:"variant"`
}

// Content is the resolved copy bundle for a surface render.
type Content struct {
	Variant      string `json:"variant"`
	Headline     string `json:"headline"`
	Subheadline  string `json:"subheadline"`
	ModifierText string `json:"modifier_text,omitempty"`
	CTALabel     string `json:"cta_label"`
	AccentColor  string `json:"accent_color"`
}

// HesitationMessages is an ordered candidate list for one trigger kind.
type HesitationMessages struct {
	Kind     string   `json:"kind"`
	Messages []string `json:"messages"`
}

// ExitIntentRequest reports a pointer crossing from the funnel page.
type ExitIntentRequest struct {
	SessionID string  `json:"session_id"`
	PointerY  float64 `json:"pointer_y"`
}

// ExitIntentResponse tells the caller whether to show the exit prompt.
type ExitIntentResponse struct {
	Fire bool `json:"fire"`
}

// VisitRequest bumps the advisory per-assessment visit counter.
type VisitRequest struct {
	AssessmentID string `json:"assessment_id"`
}

type VisitResponse struct {
	Visits int64 `json:"visits"`
}

// Availability is the tri-state feature gate result.
type Availability struct {
	State string `json:"state"` // unknown | available | unavailable
}

// Event is the inbound analytics event body.
type Event struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Error is the problem body returned by handlers on user-visible failures.
type Error struct {
	Message string `json:"message"`
}
