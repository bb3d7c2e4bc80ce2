package adapters

import (
	"fmt"

	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/relasi-app/relasi-core/pkg/models/domain"
)

// MapReportApiToDomain normalizes a raw backend report payload into the
// canonical document shape. Duck-typed fields are resolved here, once, so the
// composer never has to branch on payload shape. Scores are clamped to
// [0,100]; absent strings stay empty.
func MapReportApiToDomain(r *api.Report) (*domain.ReportDocument, error) {
	if r == nil {
		return nil, fmt.Errorf("report payload is nil")
	}

	doc := &domain.ReportDocument{ID: r.ID}

	switch r.Type {
	case string(domain.ReportSingle):
		if r.Single == nil {
			return nil, fmt.Errorf("report %s: type single without single payload", r.ID)
		}
		doc.Kind = domain.ReportSingle
		doc.Single = mapSingle(r.Single)
	case string(domain.ReportCouple):
		if r.Couple == nil {
			return nil, fmt.Errorf("report %s: type couple without couple payload", r.ID)
		}
		doc.Kind = domain.ReportCouple
		doc.Couple = mapCouple(r.Couple)
	case string(domain.ReportFamily):
		if r.Family == nil {
			return nil, fmt.Errorf("report %s: type family without family payload", r.ID)
		}
		doc.Kind = domain.ReportFamily
		doc.Family = mapFamily(r.Family)
	default:
		return nil, fmt.Errorf("report %s: unknown type %q", r.ID, r.Type)
	}

	return doc, nil
}

func mapSingle(s *api.SingleReport) *domain.SingleReport {
	out := &domain.SingleReport{
		Profile:     mapProfile(s.Profile),
		Strengths:   mapEntries(s.Strengths),
		Weaknesses:  mapEntries(s.Weaknesses),
		Tips:        append([]string(nil), s.Tips...),
		ColorScores: map[domain.ColorCode]int{},
	}
	for _, d := range s.Dynamics {
		out.Dynamics = append(out.Dynamics, domain.Entry{Title: d.Title, Description: d.Body})
	}
	for code, score := range s.ColorScores {
		out.ColorScores[domain.ColorCode(code)] = clampScore(score)
	}
	return out
}

func mapCouple(c *api.CoupleReport) *domain.CoupleReport {
	out := &domain.CoupleReport{
		PersonA: mapProfile(c.PersonA),
		PersonB: mapProfile(c.PersonB),
		Compatibility: domain.Compatibility{
			Score:    clampScore(c.Compatibility.Score),
			Headline: c.Compatibility.Headline,
			Overview: c.Compatibility.Overview,
		},
		SharedStrengths: mapEntries(c.SharedStrengths),
		Tips:            append([]string(nil), c.Tips...),
	}
	for _, f := range c.FrictionAreas {
		out.FrictionAreas = append(out.FrictionAreas, domain.FrictionArea{
			Area:          firstNonEmpty(f.Area, f.Title),
			Why:           firstNonEmpty(f.Why, f.Description),
			ResolutionTip: f.ResolutionTip,
		})
	}
	return out
}

func mapFamily(f *api.FamilyReport) *domain.FamilyReport {
	out := &domain.FamilyReport{
		FamilyName: f.FamilyName,
		Summary: domain.FamilySummary{
			HarmonyScore: clampScore(f.Summary.HarmonyScore),
			Headline:     f.Summary.Headline,
			Overview:     f.Summary.Overview,
		},
		RoleAnalysis:   mapEntries(f.RoleAnalysis),
		StrengthMatrix: mapEntries(f.StrengthMatrix),
		Exercises:      mapEntries(f.Exercises),
	}
	for _, m := range f.Members {
		out.Members = append(out.Members, mapProfile(m))
	}
	for _, p := range f.FrictionPoints {
		out.FrictionPoints = append(out.FrictionPoints, domain.FamilyFriction{
			BetweenMembers: append([]string(nil), p.BetweenMembers...),
			Description:    p.Description,
			ResolutionTip:  p.ResolutionTip,
		})
	}
	return out
}

func mapProfile(p api.PersonProfile) domain.PersonProfile {
	return domain.PersonProfile{
		Name:           p.Name,
		PrimaryColor:   domain.ColorCode(p.PrimaryColor),
		SecondaryColor: domain.ColorCode(p.SecondaryColor),
		Summary:        p.Summary,
	}
}

func mapEntries(in []api.FlexEntry) []domain.Entry {
	out := make([]domain.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, domain.Entry{Title: e.Title, Description: e.Description})
	}
	return out
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
