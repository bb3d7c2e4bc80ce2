package experiment

import (
	"testing"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveContentIsTotal(t *testing.T) {
	variants := []domain.Variant{
		domain.VariantColor, domain.VariantPsychological, domain.VariantHybrid,
		domain.VariantSoft, domain.VariantDirect, domain.VariantUrgency,
	}
	colors := append(domain.KnownColors(), domain.ColorCode("color_violet"), domain.ColorCode(""))
	locales := []domain.Locale{domain.LocaleID, domain.LocaleEN, domain.Locale("fr")}

	for _, v := range variants {
		for _, c := range colors {
			for _, l := range locales {
				profile := domain.UserPsychProfile{PrimaryColor: c}
				bundle := ResolveContent(v, profile, l)

				assert.NotEmpty(t, bundle.Headline, "%s/%s/%s", v, c, l)
				assert.NotEmpty(t, bundle.Subheadline, "%s/%s/%s", v, c, l)
				assert.NotEmpty(t, bundle.ModifierText, "%s/%s/%s", v, c, l)
				assert.NotEmpty(t, bundle.CTALabel, "%s/%s/%s", v, c, l)
				assert.NotEmpty(t, bundle.AccentColor, "%s/%s/%s", v, c, l)
			}
		}
	}
}

func TestResolveContentIsPure(t *testing.T) {
	profile := domain.UserPsychProfile{
		PrimaryColor:  domain.ColorGreen,
		PrimaryNeed:   domain.NeedHarmony,
		ConflictStyle: domain.ConflictAccommodating,
	}

	first := ResolveContent(domain.VariantHybrid, profile, domain.LocaleEN)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ResolveContent(domain.VariantHybrid, profile, domain.LocaleEN))
	}
}

func TestResolveContentUnknownColorFallsBack(t *testing.T) {
	odd := ResolveContent(domain.VariantColor,
		domain.UserPsychProfile{PrimaryColor: "color_violet"}, domain.LocaleID)
	red := ResolveContent(domain.VariantColor,
		domain.UserPsychProfile{PrimaryColor: domain.ColorRed}, domain.LocaleID)

	assert.Equal(t, red, odd)
}

func TestResolveContentVariantComposition(t *testing.T) {
	profile := domain.UserPsychProfile{PrimaryColor: domain.ColorBlue}

	colorBundle := ResolveContent(domain.VariantColor, profile, domain.LocaleEN)
	assert.Equal(t, headlineByColor[domain.ColorBlue].en, colorBundle.Headline)
	assert.Equal(t, subByColor[domain.ColorBlue].en, colorBundle.Subheadline)

	psychBundle := ResolveContent(domain.VariantPsychological, profile, domain.LocaleEN)
	assert.Equal(t, headlineByNeed[domain.NeedCertainty].en, psychBundle.Headline)
	assert.Equal(t, subByNeed[domain.NeedCertainty].en, psychBundle.Subheadline)

	hybridBundle := ResolveContent(domain.VariantHybrid, profile, domain.LocaleEN)
	assert.Equal(t, colorBundle.Headline, hybridBundle.Headline)
	assert.Equal(t, psychBundle.Subheadline, hybridBundle.Subheadline)

	urgencyBundle := ResolveContent(domain.VariantUrgency, profile, domain.LocaleEN)
	assert.Equal(t, urgencyModifier.en, urgencyBundle.ModifierText)

	assert.Equal(t, "#3182CE", colorBundle.AccentColor)
}

func TestResolveContentLocaleSelection(t *testing.T) {
	profile := domain.UserPsychProfile{PrimaryColor: domain.ColorYellow}

	id := ResolveContent(domain.VariantColor, profile, domain.LocaleID)
	en := ResolveContent(domain.VariantColor, profile, domain.LocaleEN)
	unknown := ResolveContent(domain.VariantColor, profile, domain.Locale("fr"))

	assert.NotEqual(t, id.Headline, en.Headline)
	assert.Equal(t, id, unknown, "unknown locales fall back to Indonesian")
}

func TestDeriveIsTotal(t *testing.T) {
	for _, c := range domain.KnownColors() {
		assert.NotEmpty(t, DeriveNeed(c))
		assert.NotEmpty(t, DeriveConflictStyle(c))
	}

	assert.Equal(t, domain.NeedAchievement, DeriveNeed("color_violet"))
	assert.Equal(t, domain.ConflictConfrontive, DeriveConflictStyle("color_violet"))
	assert.Equal(t, domain.NeedHarmony, DeriveNeed(domain.ColorGreen))
	assert.Equal(t, domain.ConflictAnalytical, DeriveConflictStyle(domain.ColorBlue))
}
