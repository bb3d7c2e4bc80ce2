package api

import "encoding/json"

// FlexEntry accepts the backend's "string or {title, description}" list items
// and decodes both shapes into one struct.
type FlexEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (e *FlexEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Title = s
		e.Description = ""
		return nil
	}

	type plain FlexEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = FlexEntry(p)
	return nil
}

// Report is the raw payload of GET /relasi4/reports/{id}.
type Report struct {
	ID     string        `json:"id"`
	Type   string        `json:"type"` // single | couple | family
	Single *SingleReport `json:"single,omitempty"`
	Couple *CoupleReport `json:"couple,omitempty"`
	Family *FamilyReport `json:"family,omitempty"`
}

type PersonProfile struct {
	Name           string `json:"name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	Summary        string `json:"summary"`
}

type DynamicsSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type SingleReport struct {
	Profile     PersonProfile     `json:"profile"`
	Strengths   []FlexEntry       `json:"strengths"`
	Weaknesses  []FlexEntry       `json:"weaknesses"`
	Dynamics    []DynamicsSection `json:"relationship_dynamics"`
	Tips        []string          `json:"practical_tips"`
	ColorScores map[string]int    `json:"color_scores"`
}

type Compatibility struct {
	Score    int    `json:"score"`
	Headline string `json:"headline"`
	Overview string `json:"overview"`
}

type FrictionArea struct {
	// Older payloads use title/description, newer ones area/why.
	Title         string `json:"title,omitempty"`
	Area          string `json:"area,omitempty"`
	Description   string `json:"description,omitempty"`
	Why           string `json:"why,omitempty"`
	ResolutionTip string `json:"resolution_tip,omitempty"`
}

type CoupleReport struct {
	PersonA         PersonProfile  `json:"person_a"`
	PersonB         PersonProfile  `json:"person_b"`
	Compatibility   Compatibility  `json:"compatibility"`
	SharedStrengths []FlexEntry    `json:"shared_strengths"`
	FrictionAreas   []FrictionArea `json:"friction_areas"`
	Tips            []string       `json:"practical_tips"`
}

type FamilySummary struct {
	HarmonyScore int    `json:"harmony_score"`
	Headline     string `json:"headline"`
	Overview     string `json:"overview"`
}

type FamilyFriction struct {
	BetweenMembers []string `json:"between_members"`
	Description    string   `json:"friction_description"`
	ResolutionTip  string   `json:"resolution_tip,omitempty"`
}

type FamilyReport struct {
	FamilyName     string           `json:"family_name"`
	Members        []PersonProfile  `json:"members"`
	Summary        FamilySummary    `json:"summary"`
	RoleAnalysis   []FlexEntry      `json:"role_analysis"`
	StrengthMatrix []FlexEntry      `json:"strength_matrix"`
	FrictionPoints []FamilyFriction `json:"friction_points"`
	Exercises      []FlexEntry      `json:"exercises"`
}

// ReportLookup is the payload of GET /relasi4/reports/by-assessment/{id}.
type ReportLookup struct {
	Exists bool    `json:"exists"`
	Report *Report `json:"report,omitempty"`
}

// GenerateResponse is the payload of POST /relasi4/reports/generate.
type GenerateResponse struct {
	Success bool    `json:"success"`
	Report  *Report `json:"report,omitempty"`
}
