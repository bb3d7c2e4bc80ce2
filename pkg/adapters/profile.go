package adapters

import (
	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/relasi-app/relasi-core/pkg/services/experiment"
)

// MapProfileParams builds a psych profile from loose query/body parameters.
// Need and style are each derived from the color only when not supplied;
// a known value for one never forces a fallback for the other.
func MapProfileParams(color, need, style string) domain.UserPsychProfile {
	p := domain.UserPsychProfile{
		PrimaryColor:  domain.ColorCode(color),
		PrimaryNeed:   domain.NeedTag(need),
		ConflictStyle: domain.ConflictTag(style),
	}
	if p.PrimaryNeed == "" {
		p.PrimaryNeed = experiment.DeriveNeed(p.PrimaryColor)
	}
	if p.ConflictStyle == "" {
		p.ConflictStyle = experiment.DeriveConflictStyle(p.PrimaryColor)
	}
	return p
}
