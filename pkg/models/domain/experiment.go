package domain

// Variant is one experiment arm of a surface.
type Variant string

// SurfaceID names an upsell surface running an experiment.
type SurfaceID string

const (
	SurfaceResultsUpsell SurfaceID = "results_upsell"
	SurfaceCheckoutCTA   SurfaceID = "checkout_cta"
)

// Arms of the results_upsell surface.
const (
	VariantColor         Variant = "color"
	VariantPsychological Variant = "psychological"
	VariantHybrid        Variant = "hybrid"
)

// Arms of the checkout_cta surface.
const (
	VariantSoft    Variant = "soft"
	VariantDirect  Variant = "direct"
	VariantUrgency Variant = "urgency"
)

// Locale selects the copy language. Indonesian is the product default.
type Locale string

const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"
)

// ContentBundle is the fully resolved copy for one render of a surface.
// Every field is populated for every reachable input combination.
type ContentBundle struct {
	Headline     string
	Subheadline  string
	ModifierText string
	CTALabel     string
	AccentColor  string // hex
}

// TriggerKind names a hesitation signal.
type TriggerKind string

const (
	TriggerTimeDelay   TriggerKind = "time_delay"
	TriggerScrollBack  TriggerKind = "scroll_back"
	TriggerHover       TriggerKind = "hover"
	TriggerSecondVisit TriggerKind = "second_visit"
)
