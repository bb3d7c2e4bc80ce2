package domain

// ReportKind discriminates the three report shapes.
type ReportKind string

const (
	ReportSingle ReportKind = "single"
	ReportCouple ReportKind = "couple"
	ReportFamily ReportKind = "family"
)

// ReportDocument is the canonical input to the PDF composer. Exactly one of
// Single/Couple/Family is populated, selected by Kind. All entries are already
// normalized: no raw string-or-object fields survive past the adapters.
type ReportDocument struct {
	ID     string
	Kind   ReportKind
	Single *SingleReport
	Couple *CoupleReport
	Family *FamilyReport
}

// Entry is a normalized list item. Plain-string source items carry the text in
// Title with an empty Description.
type Entry struct {
	Title       string
	Description string
}

type PersonProfile struct {
	Name           string
	PrimaryColor   ColorCode
	SecondaryColor ColorCode
	Summary        string
}

type SingleReport struct {
	Profile     PersonProfile
	Strengths   []Entry
	Weaknesses  []Entry
	Dynamics    []Entry // up to three titled relationship-dynamics sections
	Tips        []string
	ColorScores map[ColorCode]int // 0..100 per color
}

// Compatibility is the backend-computed couple score block.
type Compatibility struct {
	Score    int // 0..100
	Headline string
	Overview string
}

type FrictionArea struct {
	Area          string
	Why           string
	ResolutionTip string
}

type CoupleReport struct {
	PersonA         PersonProfile
	PersonB         PersonProfile
	Compatibility   Compatibility
	SharedStrengths []Entry
	FrictionAreas   []FrictionArea
	Tips            []string
}

// FamilySummary mirrors Compatibility for the whole-family harmony block.
type FamilySummary struct {
	HarmonyScore int // 0..100
	Headline     string
	Overview     string
}

type FamilyFriction struct {
	BetweenMembers []string
	Description    string
	ResolutionTip  string
}

type FamilyReport struct {
	FamilyName     string
	Members        []PersonProfile
	Summary        FamilySummary
	RoleAnalysis   []Entry
	StrengthMatrix []Entry
	FrictionPoints []FamilyFriction
	Exercises      []Entry
}
